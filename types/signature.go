package types

import "time"

// SavedSignature is a signature image kept in a user's library.
// SignatureData is stored exactly as uploaded (data-URL or bare base64).
type SavedSignature struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"-"`
	Name          string    `json:"name"`
	SignatureData string    `json:"signature_data"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryEntry records one completed signing operation. UserID is nil for
// anonymous signings and is nulled out when the owning account is deleted,
// so the row outlives the account.
type HistoryEntry struct {
	ID               int64     `json:"id"`
	UserID           *int64    `json:"-"`
	OriginalFilename string    `json:"original_filename"`
	SignedFilename   string    `json:"signed_filename"`
	FilePath         string    `json:"-"`
	SignaturePage    int       `json:"signature_page"`
	CreatedAt        time.Time `json:"created_at"`
}
