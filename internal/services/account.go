package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-signpdf/internal/auth"
	"go-signpdf/internal/store"
	"go-signpdf/types"
)

const sessionTTL = 7 * 24 * time.Hour

// ErrInvalidCredentials is returned when an email/password pair does not
// match a stored account.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountService handles registration, login, token resolution, and account
// deletion.
type AccountService struct {
	users    UserStore
	sessions SessionStore
}

func NewAccountService(users UserStore, sessions SessionStore) *AccountService {
	return &AccountService{users: users, sessions: sessions}
}

// Register creates an account and issues a first session token.
// Duplicate emails surface as store.ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (types.User, string, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, "", err
	}

	user, err := s.users.Create(ctx, types.User{
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return types.User{}, "", err
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return types.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials, stamps last_login, and issues a fresh session
// token. Every login adds a session row; concurrent tokens coexist.
func (s *AccountService) Login(ctx context.Context, email, password string) (types.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, "", ErrInvalidCredentials
		}
		return types.User{}, "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return types.User{}, "", ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return types.User{}, "", fmt.Errorf("failed to update last login: %w", err)
	}
	// Re-read so the returned profile carries the stamped last_login.
	user, err = s.users.GetByID(ctx, user.ID)
	if err != nil {
		return types.User{}, "", err
	}

	token, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return types.User{}, "", err
	}
	return user, token, nil
}

// Resolve returns the user owning a live token, or store.ErrNotFound.
func (s *AccountService) Resolve(ctx context.Context, token string) (types.User, error) {
	return s.sessions.ResolveToken(ctx, token)
}

// Logout revokes a token. Revoking an unknown token succeeds.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// Delete removes the account. The store cascades sessions and saved
// signatures and anonymizes history rows.
func (s *AccountService) Delete(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}

func (s *AccountService) issueSession(ctx context.Context, userID int64) (string, error) {
	token, err := auth.NewToken()
	if err != nil {
		return "", err
	}
	_, err = s.sessions.Create(ctx, types.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(sessionTTL),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}
