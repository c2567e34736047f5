package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-signpdf/types"
)

// SessionRepository handles persistence for bearer-token sessions.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session types.Session) (types.Session, error) {
	session.CreatedAt = time.Now()

	const query = `
		INSERT INTO sessions (user_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRowContext(
		ctx,
		query,
		session.UserID,
		session.Token,
		session.ExpiresAt,
		session.CreatedAt,
	).Scan(&session.ID)
	if err != nil {
		return types.Session{}, err
	}
	return session, nil
}

// ResolveToken returns the user owning a live session token. Expired sessions
// are filtered out here rather than swept; expiry never slides on use.
func (r *SessionRepository) ResolveToken(ctx context.Context, token string) (types.User, error) {
	const query = `
		SELECT u.id, u.email, u.password_hash, u.name, u.created_at, u.last_login
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > $2`
	var user types.User
	var name sql.NullString
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, token, time.Now()).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&name,
		&user.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	user.Name = name.String
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return user, nil
}

// Delete revokes a token. Deleting an unknown token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.ExecContext(ctx, query, token)
	return err
}
