package services

import (
	"context"
	"time"

	"go-signpdf/types"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user types.User) (types.User, error)
	GetByID(ctx context.Context, id int64) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// SessionStore defines persistence operations for bearer-token sessions.
type SessionStore interface {
	Create(ctx context.Context, session types.Session) (types.Session, error)
	ResolveToken(ctx context.Context, token string) (types.User, error)
	Delete(ctx context.Context, token string) error
}

// SignatureStore defines persistence operations for saved signatures.
type SignatureStore interface {
	Create(ctx context.Context, sig types.SavedSignature) (types.SavedSignature, error)
	ListByUser(ctx context.Context, userID int64) ([]types.SavedSignature, error)
	Delete(ctx context.Context, id, userID int64) error
}

// HistoryStore defines persistence operations for signing history.
type HistoryStore interface {
	Add(ctx context.Context, entry types.HistoryEntry) (types.HistoryEntry, error)
	ListByUser(ctx context.Context, userID int64, limit int) ([]types.HistoryEntry, error)
	ClearByUser(ctx context.Context, userID int64) error
	PruneAnonymous(ctx context.Context, olderThan time.Time) ([]string, error)
}
