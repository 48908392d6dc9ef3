package auth

import "context"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker resolves a session token to the identity behind it. A token
// that is unknown or expired resolves to ErrNoSession.
type Checker interface {
	CheckSession(ctx context.Context, token string) (Identity, error)
}
