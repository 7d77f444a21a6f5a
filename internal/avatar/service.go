package avatar

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitquest/internal/telemetry/metrics"
	"github.com/2beens/fitquest/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=avatar_test

// maxMutationAttempts bounds the read-modify-write retries on version conflicts.
const maxMutationAttempts = 3

type avatarRepo interface {
	GetOrCreate(ctx context.Context, userID int) (*Avatar, error)
	Update(ctx context.Context, avatar *Avatar) (*Avatar, error)
}

type NextBoss struct {
	BossLevel int       `json:"bossLevel"`
	Stats     BossStats `json:"stats"`
}

type Service struct {
	repo           avatarRepo
	engine         *Engine
	bossCurve      *BossCurve
	metricsManager *metrics.Manager
}

func NewService(
	repo avatarRepo,
	engine *Engine,
	bossCurve *BossCurve,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		repo:           repo,
		engine:         engine,
		bossCurve:      bossCurve,
		metricsManager: metricsManager,
	}
}

func (s *Service) Get(ctx context.Context, userID int) (_ *Avatar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.avatar.get")
	defer func() { tracing.EndSpan(span, err) }()

	a, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get avatar %d: %w", userID, err)
	}
	return a, nil
}

func (s *Service) AddExperience(ctx context.Context, userID, points int) (_ *Avatar, leveledUp bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.avatar.addexperience")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int("points", points))

	updated, err := s.mutate(ctx, userID, func(a Avatar) (Avatar, error) {
		var err error
		a, leveledUp, err = s.engine.AddExperience(a, points)
		return a, err
	})
	if err != nil {
		return nil, false, err
	}

	s.metricsManager.CounterExperiencePoints.Add(float64(points))
	if leveledUp {
		s.metricsManager.CounterLevelUps.Inc()
		log.Debugf("avatar %d leveled up to %d", userID, updated.Level)
	}
	span.SetAttributes(attribute.Bool("leveled-up", leveledUp))

	return updated, leveledUp, nil
}

func (s *Service) UpgradeStat(ctx context.Context, userID int, statKey StatKey) (_ *Avatar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.avatar.upgradestat")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.String("stat", statKey.String()))

	// reject before touching the db
	if !statKey.IsValid() {
		return nil, NewInvalidInputError("stat", fmt.Sprintf("unknown stat key [%s]", statKey))
	}

	updated, err := s.mutate(ctx, userID, func(a Avatar) (Avatar, error) {
		return s.engine.UpgradeStat(a, statKey)
	})
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterStatUpgrades.WithLabelValues(statKey.String()).Inc()
	return updated, nil
}

func (s *Service) AdvanceBoss(ctx context.Context, userID int) (_ *Avatar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.avatar.advanceboss")
	defer func() { tracing.EndSpan(span, err) }()

	updated, err := s.mutate(ctx, userID, func(a Avatar) (Avatar, error) {
		return s.engine.AdvanceBoss(a), nil
	})
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterBossAdvances.Inc()
	log.Debugf("avatar %d advanced to boss level %d", userID, updated.BossLevel)
	return updated, nil
}

// NextBoss returns the stats of the boss the avatar fights next: its
// boss_level counts the won encounters, so the next one is boss_level + 1.
func (s *Service) NextBoss(ctx context.Context, userID int) (_ *NextBoss, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.avatar.nextboss")
	defer func() { tracing.EndSpan(span, err) }()

	a, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	nextLevel := a.BossLevel + 1
	stats, err := s.bossCurve.Stats(nextLevel)
	if err != nil {
		return nil, err
	}

	return &NextBoss{
		BossLevel: nextLevel,
		Stats:     stats,
	}, nil
}

// mutate runs read -> apply -> version checked write, retrying the whole cycle
// when another request updated the avatar in between.
func (s *Service) mutate(ctx context.Context, userID int, apply func(Avatar) (Avatar, error)) (*Avatar, error) {
	for attempt := 1; attempt <= maxMutationAttempts; attempt++ {
		current, err := s.repo.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("get avatar %d: %w", userID, err)
		}

		updated, err := apply(*current)
		if err != nil {
			return nil, err
		}

		stored, err := s.repo.Update(ctx, &updated)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, fmt.Errorf("update avatar %d: %w", userID, err)
		}

		s.metricsManager.CounterVersionConflicts.Inc()
		log.Warnf("avatar %d version conflict, attempt %d/%d", userID, attempt, maxMutationAttempts)
	}

	return nil, fmt.Errorf("update avatar %d after %d attempts: %w", userID, maxMutationAttempts, ErrVersionConflict)
}
