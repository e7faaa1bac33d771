package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey derives the storage prefix for a user. Object keys carry this
// digest instead of the raw user ID.
func HashUserKey(userID string) string {
	digest := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(digest[:])
}
