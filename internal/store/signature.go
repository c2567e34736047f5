package store

import (
	"context"
	"database/sql"
	"time"

	"go-signpdf/types"
)

// SignatureRepository handles persistence for saved signature images.
type SignatureRepository struct {
	db *sql.DB
}

func NewSignatureRepository(db *sql.DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

func (r *SignatureRepository) Create(ctx context.Context, sig types.SavedSignature) (types.SavedSignature, error) {
	sig.CreatedAt = time.Now()

	const query = `
		INSERT INTO saved_signatures (user_id, name, signature_data, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRowContext(
		ctx,
		query,
		sig.UserID,
		sig.Name,
		sig.SignatureData,
		sig.CreatedAt,
	).Scan(&sig.ID)
	if err != nil {
		return types.SavedSignature{}, err
	}
	return sig, nil
}

func (r *SignatureRepository) ListByUser(ctx context.Context, userID int64) ([]types.SavedSignature, error) {
	const query = `
		SELECT id, user_id, name, signature_data, created_at
		FROM saved_signatures
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sigs := []types.SavedSignature{}
	for rows.Next() {
		var sig types.SavedSignature
		if err := rows.Scan(&sig.ID, &sig.UserID, &sig.Name, &sig.SignatureData, &sig.CreatedAt); err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, rows.Err()
}

// Delete removes a signature only when it belongs to userID.
func (r *SignatureRepository) Delete(ctx context.Context, id, userID int64) error {
	const query = `DELETE FROM saved_signatures WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
