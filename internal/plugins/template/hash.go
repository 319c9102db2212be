package template

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ComputeStringHash returns hex-encoded SHA-256 hash of the given string
func ComputeStringHash(s string) string {
	h := sha256.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// ComputeNoteHash hashes the title and body of a note after trimming, so
// reimporting the same text is detectable regardless of surrounding whitespace.
func ComputeNoteHash(title, body string) string {
	return ComputeStringHash(strings.TrimSpace(title) + "\n" + strings.TrimSpace(body))
}
