package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPrompt returns a stable hex digest of a prompt so logs can correlate
// generations without carrying user-supplied text.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}
