package auth

import "context"

// LoginTestChecker is an in-memory Checker for router level tests.
type LoginTestChecker struct {
	// token -> user id
	LoggedSessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]int{},
	}
}

func (c *LoginTestChecker) Check(_ context.Context, token string) (int, bool, error) {
	userID, ok := c.LoggedSessions[token]
	return userID, ok, nil
}
