package avatar

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/fitquest/internal/telemetry/tracing"
	"github.com/2beens/fitquest/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const avatarColumns = `user_id, level, experience, hp, mp, attack, defense, agility, boss_level, version, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// GetOrCreate returns the avatar of the user, creating it with the default
// values on first access.
func (r *Repo) GetOrCreate(ctx context.Context, userID int) (_ *Avatar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.avatar.getorcreate")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(attribute.Int("user.id", userID))

	defaults := NewAvatar(userID, time.Now().UTC())
	_, err = r.db.Exec(ctx, `
		INSERT INTO avatar (`+avatarColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO NOTHING
	`,
		defaults.UserID, defaults.Level, defaults.Experience,
		defaults.HP, defaults.MP, defaults.Attack, defaults.Defense, defaults.Agility,
		defaults.BossLevel, defaults.Version, defaults.UpdatedAt,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("create avatar for unknown user %d: %w", userID, err)
		}
		return nil, fmt.Errorf("create avatar: %w", err)
	}

	return r.Get(ctx, userID)
}

func (r *Repo) Get(ctx context.Context, userID int) (_ *Avatar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.avatar.get")
	defer func() { tracing.EndSpan(span, err) }()

	row := r.db.QueryRow(ctx, `
		SELECT `+avatarColumns+`
		FROM avatar
		WHERE user_id = $1
	`, userID)

	a, err := scanAvatar(row)
	if err != nil {
		if pkg.IsNoRowsError(err) {
			return nil, ErrAvatarNotFound
		}
		return nil, err
	}
	return a, nil
}

// Update stores the avatar if nobody changed it since it was read, i.e. the
// stored version still equals avatar.Version. Returns ErrVersionConflict
// otherwise.
func (r *Repo) Update(ctx context.Context, avatar *Avatar) (_ *Avatar, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.avatar.update")
	defer func() { tracing.EndSpan(span, err) }()
	span.SetAttributes(
		attribute.Int("user.id", avatar.UserID),
		attribute.Int("avatar.version", avatar.Version),
	)

	row := r.db.QueryRow(ctx, `
		UPDATE avatar
		SET level      = $3,
		    experience = $4,
		    hp         = $5,
		    mp         = $6,
		    attack     = $7,
		    defense    = $8,
		    agility    = $9,
		    boss_level = $10,
		    updated_at = $11,
		    version    = version + 1
		WHERE user_id = $1 AND version = $2
		RETURNING `+avatarColumns,
		avatar.UserID, avatar.Version,
		avatar.Level, avatar.Experience,
		avatar.HP, avatar.MP, avatar.Attack, avatar.Defense, avatar.Agility,
		avatar.BossLevel, avatar.UpdatedAt,
	)

	updated, err := scanAvatar(row)
	if err != nil {
		return nil, updateError(avatar.UserID, err)
	}
	return updated, nil
}

const statOutOfRangeReason = "stat value out of allowed range"

// updateError keeps postgres details out of errors that reach clients.
func updateError(userID int, err error) error {
	switch {
	case pkg.IsNoRowsError(err):
		return ErrVersionConflict
	case pkg.IsCheckViolationError(err):
		log.Warnf("update avatar %d, check violation: %s", userID, err)
		return NewInvalidInputError("avatar", statOutOfRangeReason)
	default:
		return err
	}
}

func scanAvatar(row pgx.Row) (*Avatar, error) {
	a := &Avatar{}
	if err := row.Scan(
		&a.UserID, &a.Level, &a.Experience,
		&a.HP, &a.MP, &a.Attack, &a.Defense, &a.Agility,
		&a.BossLevel, &a.Version, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}
