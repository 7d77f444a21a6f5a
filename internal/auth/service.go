package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitquest/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=auth

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitquest-session||"
	tokensSetKey     = "fitquest-sessions"

	minUsernameLen = 3
	minPasswordLen = 6
)

var (
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) validate() error {
	if len(strings.TrimSpace(c.Username)) < minUsernameLen {
		return fmt.Errorf("%w: username must have at least %d characters", ErrInvalidCredentials, minUsernameLen)
	}
	if len(c.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidCredentials, minPasswordLen)
	}
	if len(c.Password) > pkg.MaxPasswordBytes {
		return fmt.Errorf("%w: password must have at most %d bytes", ErrInvalidCredentials, pkg.MaxPasswordBytes)
	}
	return nil
}

type usersRepo interface {
	Add(ctx context.Context, username, passwordHash string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	users            usersRepo
	redisClient      *redis.Client
	ttl              time.Duration
	jwtSecret        []byte
	passwordHashCost int
	// ability to inject random string generator func for session ids (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewAuthService(
	users usersRepo,
	jwtSecret string,
	ttl time.Duration,
	redisClient *redis.Client,
) *Service {
	return &Service{
		users:            users,
		redisClient:      redisClient,
		ttl:              ttl,
		jwtSecret:        []byte(jwtSecret),
		passwordHashCost: pkg.DefaultPasswordHashCost,
		RandStringFunc:   pkg.GenerateRandomString,
	}
}

// SetPasswordHashCost is used in tests, bcrypt with the default cost is slow.
func (as *Service) SetPasswordHashCost(cost int) {
	as.passwordHashCost = cost
}

func (as *Service) Register(ctx context.Context, credentials Credentials) (*User, error) {
	if err := credentials.validate(); err != nil {
		return nil, err
	}

	passwordHash, err := pkg.HashPasswordWithCost(credentials.Password, as.passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := as.users.Add(ctx, strings.TrimSpace(credentials.Username), passwordHash)
	if err != nil {
		return nil, fmt.Errorf("add user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and opens a new session. The returned token is
// a signed JWT carrying the user id and the session id.
func (as *Service) Login(ctx context.Context, credentials Credentials, createdAt time.Time) (string, error) {
	user, err := as.users.GetByUsername(ctx, strings.TrimSpace(credentials.Username))
	if err != nil {
		return "", err
	}

	if !pkg.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		return "", ErrWrongPassword
	}

	sessionID, err := as.RandStringFunc(24)
	if err != nil {
		return "", err
	}

	token, err := signToken(as.jwtSecret, tokenClaims{
		UserID:    user.ID,
		SessionID: sessionID,
	}, createdAt, as.ttl)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	sessionKey := sessionKeyPrefix + sessionID
	cmdSet := as.redisClient.Set(ctx, sessionKey, sessionValue(user.ID, createdAt), as.ttl)
	if err := cmdSet.Err(); err != nil {
		return "", err
	}

	// add session to the set of sessions
	cmdSAdd := as.redisClient.SAdd(ctx, tokensSetKey, sessionID)
	if err := cmdSAdd.Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (as *Service) Logout(ctx context.Context, token string) error {
	claims, err := parseToken(as.jwtSecret, token, time.Now)
	if err != nil {
		return err
	}

	sessionKey := sessionKeyPrefix + claims.SessionID
	cmdDel := as.redisClient.Del(ctx, sessionKey)
	if err := cmdDel.Err(); err != nil {
		return err
	}

	cmdSRem := as.redisClient.SRem(ctx, tokensSetKey, claims.SessionID)
	if err := cmdSRem.Err(); err != nil {
		return err
	}

	return nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (as *Service) ScanAndClean(ctx context.Context) {
	cmd := as.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionIDs := cmd.Val()
	if len(sessionIDs) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionIDs))
	var toRemove []string
	for _, sessionID := range sessionIDs {
		cmd := as.redisClient.Get(ctx, sessionKeyPrefix+sessionID)
		if err := cmd.Err(); err != nil {
			if errors.Is(err, redis.Nil) {
				// expired by redis already, only the set entry is left
				toRemove = append(toRemove, sessionID)
				continue
			}
			log.Errorf("=> auth service, scan and clean session %s: %s", sessionID, err)
			continue
		}

		_, createdAt, err := parseSessionValue(cmd.Val())
		if err != nil {
			log.Errorf("=> auth service, scan and clean session %s: %s", sessionID, err)
			toRemove = append(toRemove, sessionID)
			continue
		}

		if time.Since(createdAt) > as.ttl {
			toRemove = append(toRemove, sessionID)
		}
	}

	for _, sessionID := range toRemove {
		if err := as.redisClient.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}
		if err := as.redisClient.SRem(ctx, tokensSetKey, sessionID).Err(); err != nil {
			log.Errorf("=> auth service, clean session %s: %s", sessionID, err)
			continue
		}
	}

	log.Debugf("=> auth service, scan and clean done, removed %d sessions", len(toRemove))
}

// session value format: <user id>|<created at unix>
func sessionValue(userID int, createdAt time.Time) string {
	return fmt.Sprintf("%d|%d", userID, createdAt.Unix())
}

func parseSessionValue(value string) (userID int, createdAt time.Time, err error) {
	userIDStr, createdAtStr, found := strings.Cut(value, "|")
	if !found {
		return 0, time.Time{}, fmt.Errorf("malformed session value [%s]", value)
	}
	userID, err = strconv.Atoi(userIDStr)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("session user id: %w", err)
	}
	createdAtUnix, err := strconv.ParseInt(createdAtStr, 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("session created at: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
