package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	jwtSecret   []byte
	redisClient *redis.Client
	now         func() time.Time
}

func NewLoginChecker(ttl time.Duration, jwtSecret string, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		jwtSecret:   []byte(jwtSecret),
		redisClient: redisClient,
		now:         time.Now,
	}
}

// Check verifies the token signature and expiry, then that its session is
// still open. Invalid or closed sessions yield ok == false without an error.
func (lc *LoginChecker) Check(ctx context.Context, token string) (int, bool, error) {
	claims, err := parseToken(lc.jwtSecret, token, lc.now)
	if err != nil {
		return 0, false, nil
	}

	cmd := lc.redisClient.Get(ctx, sessionKeyPrefix+claims.SessionID)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}

	sessionUserID, createdAt, err := parseSessionValue(cmd.Val())
	if err != nil {
		return 0, false, err
	}
	if sessionUserID != claims.UserID {
		return 0, false, nil
	}
	if lc.now().Sub(createdAt) > lc.ttl {
		return 0, false, nil
	}

	return claims.UserID, true, nil
}
