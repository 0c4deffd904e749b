// Package redis implements the session repository on Redis. Expiry is
// delegated to key TTLs, so DeleteExpired is a no-op.
package redis

import (
	"context"
	"strconv"
	"time"

	"portfolio/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// SessionRepo implements domain.SessionRepository on a Redis client.
type SessionRepo struct {
	rdb *goredis.Client
}

// NewSessionRepo wraps a Redis client as a SessionRepository.
func NewSessionRepo(rdb *goredis.Client) *SessionRepo {
	return &SessionRepo{rdb: rdb}
}

var _ domain.SessionRepository = (*SessionRepo)(nil)

// Create stores a session hash under the token key with a TTL matching its
// expiry.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, language string, expiresAt time.Time) error {
	key := keyPrefix + token
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    strconv.FormatInt(userID, 10),
		"language":   language,
		"expires_at": expiresAt.UTC().Format(time.RFC3339Nano),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.ExpireAt(ctx, key, expiresAt)
	_, err := pipe.Exec(ctx)
	return err
}

// GetByToken retrieves a session by token. Absent sessions yield (nil, nil).
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	fields, err := r.rdb.HGetAll(ctx, keyPrefix+token).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, nil
	}

	userID, err := strconv.ParseInt(fields["user_id"], 10, 64)
	if err != nil {
		return nil, err
	}
	expiresAt, err := time.Parse(time.RFC3339Nano, fields["expires_at"])
	if err != nil {
		return nil, err
	}
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Token:     token,
		UserID:    userID,
		Language:  fields["language"],
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

// SetLanguage updates the language field, leaving the key TTL untouched.
func (r *SessionRepo) SetLanguage(ctx context.Context, token, language string) error {
	key := keyPrefix + token
	n, err := r.rdb.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return r.rdb.HSet(ctx, key, "language", language).Err()
}

// Delete removes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, keyPrefix+token).Err()
}

// DeleteExpired is a no-op; Redis evicts expired session keys itself.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	return nil
}
