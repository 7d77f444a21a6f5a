package avatar

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxBossLevel keeps the exponential terms far from float overflow.
	MaxBossLevel = 1000

	maxBossDefense = 90.0
	maxBossCrit    = 100.0

	defaultBossCacheSize = 1024 * 1024
)

type BossStats struct {
	HP      float64 `json:"hp"`
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
	Crit    float64 `json:"crit"`
}

// BossStatsFor computes the stats of the boss at the given level (1 based),
// rounded to 2 decimals.
func BossStatsFor(level int) (BossStats, error) {
	if level < 1 || level > MaxBossLevel {
		return BossStats{}, NewInvalidInputError(
			"boss level",
			fmt.Sprintf("must be in [1, %d], got %d", MaxBossLevel, level),
		)
	}

	defense, crit := 1.0, 2.0
	for l := 2; l <= level; l++ {
		defense = math.Min(maxBossDefense, defense+1+0.1*defense)
		crit = math.Min(maxBossCrit, crit+1+0.05*crit)
	}

	return BossStats{
		HP:      round2(50 * math.Pow(1.15, float64(level-1))),
		Attack:  round2(5 * math.Pow(1.12, float64(level-1))),
		Defense: round2(defense),
		Crit:    round2(crit),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// BossCurve memoizes BossStatsFor, the defense and crit terms are recursive
// so computing them is linear in the level.
type BossCurve struct {
	cache *freecache.Cache
}

func NewBossCurve() *BossCurve {
	return NewBossCurveWithCacheSize(defaultBossCacheSize)
}

func NewBossCurveWithCacheSize(cacheSize int) *BossCurve {
	return &BossCurve{
		cache: freecache.NewCache(cacheSize),
	}
}

func (c *BossCurve) Stats(level int) (BossStats, error) {
	key := []byte(strconv.Itoa(level))
	if cached, err := c.cache.Get(key); err == nil {
		var stats BossStats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return stats, nil
		}
		log.Warnf("boss curve, corrupted cache entry for level %d", level)
	}

	stats, err := BossStatsFor(level)
	if err != nil {
		return BossStats{}, err
	}

	statsBytes, err := json.Marshal(stats)
	if err != nil {
		return stats, nil
	}
	if err := c.cache.Set(key, statsBytes, 0); err != nil {
		log.Warnf("boss curve, cache level %d: %s", level, err)
	}

	return stats, nil
}

// CachedEntries is the number of memoized levels.
func (c *BossCurve) CachedEntries() int64 {
	return c.cache.EntryCount()
}
