package services

import (
	"context"
	"time"

	"go-signpdf/types"
)

// SignatureService encapsulates the per-user saved-signature library.
type SignatureService struct {
	sigs SignatureStore
}

func NewSignatureService(sigs SignatureStore) *SignatureService {
	return &SignatureService{sigs: sigs}
}

func (s *SignatureService) Save(ctx context.Context, userID int64, name, signatureData string) (types.SavedSignature, error) {
	return s.sigs.Create(ctx, types.SavedSignature{
		UserID:        userID,
		Name:          name,
		SignatureData: signatureData,
	})
}

func (s *SignatureService) List(ctx context.Context, userID int64) ([]types.SavedSignature, error) {
	return s.sigs.ListByUser(ctx, userID)
}

func (s *SignatureService) Delete(ctx context.Context, id, userID int64) error {
	return s.sigs.Delete(ctx, id, userID)
}

// HistoryService encapsulates signing-history reads and cleanup.
type HistoryService struct {
	history HistoryStore
}

func NewHistoryService(history HistoryStore) *HistoryService {
	return &HistoryService{history: history}
}

func (s *HistoryService) List(ctx context.Context, userID int64, limit int) ([]types.HistoryEntry, error) {
	return s.history.ListByUser(ctx, userID, limit)
}

func (s *HistoryService) Clear(ctx context.Context, userID int64) error {
	return s.history.ClearByUser(ctx, userID)
}

// PruneAnonymous removes anonymous history older than the cutoff and returns
// the on-disk paths that should be deleted along with the rows.
func (s *HistoryService) PruneAnonymous(ctx context.Context, olderThan time.Time) ([]string, error) {
	return s.history.PruneAnonymous(ctx, olderThan)
}
