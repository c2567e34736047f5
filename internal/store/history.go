package store

import (
	"context"
	"database/sql"
	"time"

	"go-signpdf/types"
)

// HistoryRepository handles persistence for signing history.
type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Add(ctx context.Context, entry types.HistoryEntry) (types.HistoryEntry, error) {
	entry.CreatedAt = time.Now()

	var userID sql.NullInt64
	if entry.UserID != nil {
		userID = sql.NullInt64{Int64: *entry.UserID, Valid: true}
	}

	const query = `
		INSERT INTO signature_history (user_id, original_filename, signed_filename, file_path, signature_page, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.db.QueryRowContext(
		ctx,
		query,
		userID,
		entry.OriginalFilename,
		entry.SignedFilename,
		entry.FilePath,
		entry.SignaturePage,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return types.HistoryEntry{}, err
	}
	return entry, nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]types.HistoryEntry, error) {
	const query = `
		SELECT id, user_id, original_filename, signed_filename, file_path, signature_page, created_at
		FROM signature_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []types.HistoryEntry{}
	for rows.Next() {
		var entry types.HistoryEntry
		var owner sql.NullInt64
		err := rows.Scan(
			&entry.ID,
			&owner,
			&entry.OriginalFilename,
			&entry.SignedFilename,
			&entry.FilePath,
			&entry.SignaturePage,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if owner.Valid {
			id := owner.Int64
			entry.UserID = &id
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *HistoryRepository) ClearByUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM signature_history WHERE user_id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// PruneAnonymous deletes anonymous history older than the cutoff and returns
// the file paths of the deleted rows so the caller can remove them from disk.
func (r *HistoryRepository) PruneAnonymous(ctx context.Context, olderThan time.Time) ([]string, error) {
	const query = `
		DELETE FROM signature_history
		WHERE user_id IS NULL AND created_at < $1
		RETURNING file_path`
	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
