// Package memory implements in-memory repositories for development and testing.
package memory

import (
	"context"
	"sync"
	"time"

	"portfolio/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	users    []*domain.User
	projects []*domain.Project
	sessions map[string]*domain.Session

	userIDCounter    int64
	projectIDCounter int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.ProjectRepository = (*ProjectRepo)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- UserRepository ---

// GetByEmail retrieves a user by email.
func (db *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new user, enforcing email uniqueness like the store
// constraint does.
func (db *DB) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return nil, domain.ErrDuplicateEmail
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	cp := *u
	return &cp, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- ProjectRepository ---

// ProjectRepo implements project persistence.
type ProjectRepo struct {
	db *DB
}

// NewProjectRepo creates a new project repository.
func (db *DB) NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{db: db}
}

// List returns all projects in insertion order.
func (r *ProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	out := make([]domain.Project, 0, len(r.db.projects))
	for _, p := range r.db.projects {
		cp := *p
		cp.Images = append([]string(nil), p.Images...)
		out = append(out, cp)
	}
	return out, nil
}

// GetByID retrieves a project by ID.
func (r *ProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, p := range r.db.projects {
		if p.ID == id {
			cp := *p
			cp.Images = append([]string(nil), p.Images...)
			return &cp, nil
		}
	}
	return nil, nil
}

// Create creates a new project.
func (r *ProjectRepo) Create(ctx context.Context, title, description string, images []string) (*domain.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.projectIDCounter++
	p := &domain.Project{
		ID:          r.db.projectIDCounter,
		Title:       title,
		Description: description,
		Images:      append([]string{}, images...),
		CreatedAt:   time.Now().UTC(),
	}
	r.db.projects = append(r.db.projects, p)
	cp := *p
	cp.Images = append([]string(nil), p.Images...)
	return &cp, nil
}

// Update replaces title, description and the entire image list.
func (r *ProjectRepo) Update(ctx context.Context, id int64, title, description string, images []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, p := range r.db.projects {
		if p.ID == id {
			p.Title = title
			p.Description = description
			p.Images = append([]string{}, images...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Delete deletes a project by ID.
func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for i, p := range r.db.projects {
		if p.ID == id {
			r.db.projects = append(r.db.projects[:i], r.db.projects[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token, language string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		Language:  language,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

// SetLanguage updates the language of an existing session.
func (r *SessionRepo) SetLanguage(ctx context.Context, token, language string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.sessions[token]
	if !ok {
		return domain.ErrNotFound
	}
	s.Language = language
	return nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
