package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPrompt returns the hex sha256 of a substituted prompt. Audit records
// keep the hash instead of the text.
func HashPrompt(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
