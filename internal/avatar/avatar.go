package avatar

import (
	"math"
	"time"
)

const (
	ExperiencePerLevel = 100
	// MaxExperience is the largest value the experience column holds.
	MaxExperience = math.MaxInt32
	// MaxPercentStat caps defense and agility, both used as percentages.
	MaxPercentStat = 90.0

	DefaultLevel     = 1
	DefaultStatValue = 10.0
)

// Avatar is the gamified progression record, one per user.
type Avatar struct {
	UserID     int       `json:"userId"`
	Level      int       `json:"level"`
	Experience int       `json:"experience"`
	HP         float64   `json:"hp"`
	MP         float64   `json:"mp"`
	Attack     float64   `json:"attack"`
	Defense    float64   `json:"defense"`
	Agility    float64   `json:"agility"`
	BossLevel  int       `json:"bossLevel"`
	Version    int       `json:"version"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NewAvatar returns the avatar a user starts with.
func NewAvatar(userID int, now time.Time) Avatar {
	return Avatar{
		UserID:     userID,
		Level:      DefaultLevel,
		Experience: 0,
		HP:         DefaultStatValue,
		MP:         DefaultStatValue,
		Attack:     DefaultStatValue,
		Defense:    DefaultStatValue,
		Agility:    DefaultStatValue,
		BossLevel:  0,
		Version:    1,
		UpdatedAt:  now,
	}
}

// StatKey names an upgradable combat attribute.
type StatKey string

const (
	StatHP      StatKey = "hp"
	StatMP      StatKey = "mp"
	StatAttack  StatKey = "attack"
	StatDefense StatKey = "defense"
	StatAgility StatKey = "agility"
)

func (sk StatKey) String() string {
	return string(sk)
}

func (sk StatKey) IsValid() bool {
	switch sk {
	case StatHP,
		StatMP,
		StatAttack,
		StatDefense,
		StatAgility:
		return true
	default:
		return false
	}
}
