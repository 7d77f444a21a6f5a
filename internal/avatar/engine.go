package avatar

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

// Engine holds the progression rules. All methods are pure over the passed
// avatar value: they never do I/O and never modify their input.
type Engine struct {
	now    func() time.Time
	random func() float64
}

func NewEngine() *Engine {
	return &Engine{
		now:    time.Now,
		random: rand.Float64,
	}
}

// NewEngineWithSources is used by tests and tools that need a fixed clock or
// a deterministic random source.
func NewEngineWithSources(now func() time.Time, random func() float64) *Engine {
	return &Engine{
		now:    now,
		random: random,
	}
}

// AddExperience adds points and applies at most one level-up, even when
// points would cross more than one threshold.
func (e *Engine) AddExperience(a Avatar, points int) (_ Avatar, leveledUp bool, _ error) {
	if points < 0 {
		return a, false, NewInvalidInputError("points", fmt.Sprintf("must not be negative, got %d", points))
	}
	if points > MaxExperience-a.Experience {
		return a, false, NewInvalidInputError("points", fmt.Sprintf("must be at most %d, got %d", MaxExperience-a.Experience, points))
	}

	newExperience := a.Experience + points
	if newExperience >= ExperiencePerLevel {
		a.Level++
		a.Experience = newExperience - ExperiencePerLevel
		leveledUp = true
	} else {
		a.Experience = newExperience
	}

	a.UpdatedAt = e.stamp()
	return a, leveledUp, nil
}

// UpgradeStat applies one growth step to the given stat.
// Nothing limits how many upgrades follow a single level-up.
func (e *Engine) UpgradeStat(a Avatar, statKey StatKey) (Avatar, error) {
	switch statKey {
	case StatHP:
		a.HP *= 1.2
	case StatMP:
		a.MP *= 1.1
	case StatAttack:
		a.Attack *= 1.1
	case StatDefense:
		a.Defense = math.Min(MaxPercentStat, a.Defense+2)
	case StatAgility:
		a.Agility = math.Min(MaxPercentStat, a.Agility+1)
	default:
		return a, NewInvalidInputError("stat", fmt.Sprintf("unknown stat key [%s]", statKey))
	}

	a.Defense = clampPercent(a.Defense)
	a.Agility = clampPercent(a.Agility)
	a.UpdatedAt = e.stamp()
	return a, nil
}

// AdvanceBoss is called after a boss encounter was won.
func (e *Engine) AdvanceBoss(a Avatar) Avatar {
	a.BossLevel++
	a.UpdatedAt = e.stamp()
	return a
}

// Dodge rolls a dodge with the given chance in percent, capped at 90%.
func (e *Engine) Dodge(dodgeChancePercent float64) bool {
	return e.random() < math.Min(0.9, dodgeChancePercent/100)
}

// postgres keeps microseconds, truncate so a stored avatar reads back equal
func (e *Engine) stamp() time.Time {
	return e.now().UTC().Truncate(time.Microsecond)
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(MaxPercentStat, v))
}
