package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account that owns evidence. Only operators create users.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail is the form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// Upsert creates the user or replaces the password hash of an existing email.
	Upsert(ctx context.Context, u *User) error
}
