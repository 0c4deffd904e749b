// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"portfolio/internal/domain"

	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL error code for a unique-constraint hit.
const uniqueViolation = "23505"

// UserRepo implements domain.UserRepository on DB.
type UserRepo struct {
	db *DB
}

// NewUserRepo wraps a DB as a UserRepository.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetByEmail retrieves a user by email. Absent users yield (nil, nil).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE email = $1",
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM users WHERE id = $1",
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. The unique constraint on email is the actual
// duplicate guard; its violation surfaces as domain.ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	var u domain.User
	err := r.db.sql.QueryRowContext(ctx,
		"INSERT INTO users (email, password_hash, created_at) VALUES ($1, $2, $3) RETURNING id, email, password_hash, created_at",
		email, passwordHash, time.Now(),
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// Count returns the total number of users.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	return count, err
}

// SessionRepo implements domain.SessionRepository on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, language string, expiresAt time.Time) error {
	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, language, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)",
		token, userID, language, expiresAt, time.Now(),
	)
	return err
}

// GetByToken retrieves a session by token. Absent sessions yield (nil, nil).
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, language, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.UserID, &s.Language, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetLanguage updates the language of an existing session.
func (r *SessionRepo) SetLanguage(ctx context.Context, token, language string) error {
	res, err := r.db.sql.ExecContext(ctx,
		"UPDATE sessions SET language = $1 WHERE token = $2", language, token)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}
