package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key builds "<prefix>:<sha256 of the normalized parts>". Parts are trimmed
// and lower-cased before hashing; inner whitespace is kept.
func Key(prefix string, parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(normalize(p)))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
