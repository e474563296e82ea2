// Package user contains the minimal user aggregate the session and
// table-object cores depend on.
package user

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           uint
	Email        string
	PasswordHash string
	LastActive   *time.Time
	CreatedAt    time.Time
}

// CheckPassword verifies a plaintext password against the stored bcrypt hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// UpdateLastActive records that the user performed an authenticated action.
	UpdateLastActive(ctx context.Context, id uint, at time.Time) error
}
