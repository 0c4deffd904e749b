// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"time"

	"portfolio/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was
	// incorrect. The same error is returned for an unknown email and a wrong
	// password so responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidInput indicates a missing email or password.
	ErrInvalidInput = errors.New("email and password are required")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidLanguage indicates a language code that is not two lowercase letters.
	ErrInvalidLanguage = errors.New("invalid language code")
)

const sessionTTL = 24 * time.Hour

// Notifier sends transactional mail to a registered user. Implementations are
// best-effort collaborators; a failure never rolls back registration.
type Notifier interface {
	SendRegistration(ctx context.Context, email string) error
}

// AuthService handles registration, authentication and session management.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	notifier Notifier
}

// NewAuthService creates a new authentication service. notifier may be nil
// when no mail credentials are configured.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, notifier Notifier) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		notifier: notifier,
	}
}

// Register creates a new user with a bcrypt-hashed password and attempts to
// send a confirmation mail. The mail attempt is non-fatal: registration has
// succeeded once the user row exists, and a notification failure is only
// logged. The store's unique constraint is the real duplicate guard; the
// lookup beforehand just gives the friendlier early error.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return ErrInvalidInput
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user, err := s.users.Create(ctx, email, string(hash))
	if err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.SendRegistration(ctx, user.Email); err != nil {
			log.Printf("registration mail to %s: %v", user.Email, err)
		}
	}
	return nil
}

// Login authenticates a user and issues a session with the default language.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueSession(ctx, user.ID)
}

// LoginWithUser creates a session for an already authenticated user (e.g. via
// SSO), auto-provisioning the account on first login.
func (s *AuthService) LoginWithUser(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		user, err = s.users.Create(ctx, email, "")
		if err != nil {
			// Concurrent first login can lose the create to the unique
			// constraint; the row exists either way.
			if !errors.Is(err, domain.ErrDuplicateEmail) {
				return "", err
			}
			user, err = s.users.GetByEmail(ctx, email)
			if err != nil || user == nil {
				return "", ErrUserNotFound
			}
		}
	}
	return s.issueSession(ctx, user.ID)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks a session token and resolves its user.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.User, *domain.Session, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil || session == nil {
		return nil, nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, nil, ErrSessionExpired
	}

	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil || user == nil {
		return nil, nil, ErrUserNotFound
	}

	return user, session, nil
}

// SetLanguage updates the display language of an existing session.
func (s *AuthService) SetLanguage(ctx context.Context, token, lang string) error {
	if len(lang) != 2 || lang[0] < 'a' || lang[0] > 'z' || lang[1] < 'a' || lang[1] > 'z' {
		return ErrInvalidLanguage
	}
	err := s.sessions.SetLanguage(ctx, token, lang)
	if errors.Is(err, domain.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}

func (s *AuthService) issueSession(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(sessionTTL)
	if err := s.sessions.Create(ctx, userID, token, domain.DefaultLanguage, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
