package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

type Checker interface {
	Check(ctx context.Context, token string) (userID int, ok bool, err error)
}
