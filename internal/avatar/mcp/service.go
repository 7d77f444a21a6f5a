package mcp

import (
	"context"

	"github.com/2beens/fitquest/internal/avatar"
)

// AvatarReader reads stored avatars without creating missing ones.
type AvatarReader interface {
	Get(ctx context.Context, userID int) (*avatar.Avatar, error)
}

// BossStatsProvider resolves boss stats for a level.
type BossStatsProvider interface {
	Stats(level int) (avatar.BossStats, error)
}

// contextService provides avatar context data for the tools.
// Used by Handler for testability.
type contextService interface {
	GetAvatar(ctx context.Context, userID int) (*avatar.Avatar, error)
	GetBossStats(level int) (avatar.BossStats, error)
	SimulateDamage(attack, mp, targetDefense float64) DamageSimulation
}

// DamageSimulation is the outcome of one basic attack and one ability against a target.
type DamageSimulation struct {
	PhysicalDamage int     `json:"physical_damage"`
	AbilityDamage  int     `json:"ability_damage"`
	TargetDefense  float64 `json:"target_defense"`
	// EffectiveDefense is the defense the formulas used, capped at 90.
	EffectiveDefense float64 `json:"effective_defense"`
}

type ContextService struct {
	avatars   AvatarReader
	bossCurve BossStatsProvider
}

func NewContextService(avatars AvatarReader, bossCurve BossStatsProvider) *ContextService {
	return &ContextService{
		avatars:   avatars,
		bossCurve: bossCurve,
	}
}

func (s *ContextService) GetAvatar(ctx context.Context, userID int) (*avatar.Avatar, error) {
	return s.avatars.Get(ctx, userID)
}

func (s *ContextService) GetBossStats(level int) (avatar.BossStats, error) {
	return s.bossCurve.Stats(level)
}

func (s *ContextService) SimulateDamage(attack, mp, targetDefense float64) DamageSimulation {
	return DamageSimulation{
		PhysicalDamage:   avatar.PhysicalDamage(attack, targetDefense),
		AbilityDamage:    avatar.AbilityDamage(mp, targetDefense),
		TargetDefense:    targetDefense,
		EffectiveDefense: min(avatar.MaxPercentStat, targetDefense),
	}
}
