// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// DefaultLanguage is the language a freshly issued session starts with.
const DefaultLanguage = "en"

// User represents a registered account, keyed by email.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Session represents an active user session. Language is the two-letter
// display-language code the session owner selected, "en" by default.
type Session struct {
	Token     string
	UserID    int64
	Language  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// UserRepository defines the port for user persistence operations.
// Create must enforce email uniqueness at the store layer and return
// a duplicate error for a second registration of the same email.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, userID int64, token, language string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	SetLanguage(ctx context.Context, token, language string) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
