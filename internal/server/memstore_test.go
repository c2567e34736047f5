package server

import (
	"context"
	"sync"
	"time"

	"go-signpdf/internal/store"
	"go-signpdf/types"
)

// memDB is an in-memory stand-in for the Postgres repositories, matching
// their semantics: unique emails, lazy session expiry, cascade on user
// deletion with history rows anonymized instead of removed. The per-entity
// views below satisfy the services store interfaces.
type memDB struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]types.User
	sessions map[string]types.Session
	sigs     map[int64]types.SavedSignature
	history  map[int64]types.HistoryEntry
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[int64]types.User),
		sessions: make(map[string]types.Session),
		sigs:     make(map[int64]types.SavedSignature),
		history:  make(map[int64]types.HistoryEntry),
	}
}

func (m *memDB) id() int64 {
	m.nextID++
	return m.nextID
}

type memUsers struct{ *memDB }

func (m memUsers) Create(_ context.Context, user types.User) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return types.User{}, store.ErrEmailTaken
		}
	}
	user.ID = m.id()
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

func (m memUsers) GetByID(_ context.Context, id int64) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m memUsers) TouchLastLogin(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	now := time.Now()
	user.LastLogin = &now
	m.users[id] = user
	return nil
}

func (m memUsers) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	for token, s := range m.sessions {
		if s.UserID == id {
			delete(m.sessions, token)
		}
	}
	for sigID, sig := range m.sigs {
		if sig.UserID == id {
			delete(m.sigs, sigID)
		}
	}
	for entryID, entry := range m.history {
		if entry.UserID != nil && *entry.UserID == id {
			entry.UserID = nil
			m.history[entryID] = entry
		}
	}
	return nil
}

type memSessions struct{ *memDB }

func (m memSessions) Create(_ context.Context, session types.Session) (types.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.ID = m.id()
	session.CreatedAt = time.Now()
	m.sessions[session.Token] = session
	return session, nil
}

func (m memSessions) ResolveToken(_ context.Context, token string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[token]
	if !ok || !session.ExpiresAt.After(time.Now()) {
		return types.User{}, store.ErrNotFound
	}
	user, ok := m.users[session.UserID]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m memSessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

type memSignatures struct{ *memDB }

func (m memSignatures) Create(_ context.Context, sig types.SavedSignature) (types.SavedSignature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sig.ID = m.id()
	sig.CreatedAt = time.Now()
	m.sigs[sig.ID] = sig
	return sig, nil
}

func (m memSignatures) ListByUser(_ context.Context, userID int64) ([]types.SavedSignature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sigs := []types.SavedSignature{}
	for _, sig := range m.sigs {
		if sig.UserID == userID {
			sigs = append(sigs, sig)
		}
	}
	return sigs, nil
}

func (m memSignatures) Delete(_ context.Context, id, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sig, ok := m.sigs[id]
	if !ok || sig.UserID != userID {
		return store.ErrNotFound
	}
	delete(m.sigs, id)
	return nil
}

type memHistory struct{ *memDB }

func (m memHistory) Add(_ context.Context, entry types.HistoryEntry) (types.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = m.id()
	entry.CreatedAt = time.Now()
	m.history[entry.ID] = entry
	return entry, nil
}

func (m memHistory) ListByUser(_ context.Context, userID int64, limit int) ([]types.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := []types.HistoryEntry{}
	for _, entry := range m.history {
		if entry.UserID != nil && *entry.UserID == userID {
			entries = append(entries, entry)
		}
		if len(entries) == limit {
			break
		}
	}
	return entries, nil
}

func (m memHistory) ClearByUser(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, entry := range m.history {
		if entry.UserID != nil && *entry.UserID == userID {
			delete(m.history, id)
		}
	}
	return nil
}

func (m memHistory) PruneAnonymous(_ context.Context, olderThan time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := []string{}
	for id, entry := range m.history {
		if entry.UserID == nil && entry.CreatedAt.Before(olderThan) {
			paths = append(paths, entry.FilePath)
			delete(m.history, id)
		}
	}
	return paths, nil
}
