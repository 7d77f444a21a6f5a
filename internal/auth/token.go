package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "fitquest"

var ErrInvalidToken = errors.New("invalid token")

type tokenClaims struct {
	UserID    int
	SessionID string
}

func signToken(secret []byte, claims tokenClaims, createdAt time.Time, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(claims.UserID),
		ID:        claims.SessionID,
		IssuedAt:  jwt.NewNumericDate(createdAt),
		ExpiresAt: jwt.NewNumericDate(createdAt.Add(ttl)),
	})
	return token.SignedString(secret)
}

func parseToken(secret []byte, tokenStr string, now func() time.Time) (tokenClaims, error) {
	registered := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenStr,
		registered,
		func(token *jwt.Token) (any, error) {
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return tokenClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := strconv.Atoi(registered.Subject)
	if err != nil || registered.ID == "" {
		return tokenClaims{}, fmt.Errorf("%w: bad subject or session id", ErrInvalidToken)
	}

	return tokenClaims{
		UserID:    userID,
		SessionID: registered.ID,
	}, nil
}
