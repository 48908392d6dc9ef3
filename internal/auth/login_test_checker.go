package auth

import "context"

type LoginTestChecker struct {
	LoggedSessions map[string]Identity
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]Identity{},
	}
}

func (c *LoginTestChecker) CheckSession(_ context.Context, token string) (Identity, error) {
	identity, ok := c.LoggedSessions[token]
	if !ok {
		return Identity{}, ErrNoSession
	}
	return identity, nil
}
