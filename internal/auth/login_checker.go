package auth

import (
	"context"
	"time"
)

type LoginChecker struct {
	ttl     time.Duration
	service *Service
}

func NewLoginChecker(ttl time.Duration, service *Service) *LoginChecker {
	return &LoginChecker{
		ttl:     ttl,
		service: service,
	}
}

func (c *LoginChecker) CheckSession(ctx context.Context, token string) (Identity, error) {
	session, err := c.service.session(ctx, token)
	if err != nil {
		return Identity{}, err
	}

	if time.Since(session.CreatedAt) > c.ttl {
		return Identity{}, ErrNoSession
	}

	return session.Identity, nil
}
