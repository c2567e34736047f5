// Package utils provides filename sanitization and unique ID generation.
//
// Functions:
//   - SanitizeFilename: Returns a safe filename for storage.
//     Input: string (filename)
//     Output: string (sanitized filename)
//   - GenerateUUID: Returns a new UUID string.
//     Output: string (UUID)
//
// Used by the upload and signing paths for safe file handling and unique IDs.
package utils

import (
	"path/filepath"
	"regexp"

	"github.com/google/uuid"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	safe := unsafeChars.ReplaceAllString(base, "_")
	if len(safe) > 100 {
		safe = safe[:100]
	}
	return safe
}

func GenerateUUID() string {
	return uuid.New().String()
}
