package users

import (
	"errors"
	"time"

	"github.com/fittrack/fittrack/internal/auth"
)

var ErrUserNotFound = errors.New("user not found")

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// User is an account in the user directory. Archiving a user moves the
// account itself, independent of any workout record's partition.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	Status       Status    `json:"status"`
	AvatarRef    string    `json:"avatarRef,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u User) Identity() auth.Identity {
	return auth.Identity{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
	}
}
