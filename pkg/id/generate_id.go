// Package id mints the 32-character public identifiers used for loans and
// investments. Profiles share the format because the auth platform issues
// them the same way.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Len is the length of a public id.
const Len = 32

// NewID32 returns 16 random bytes as lowercase hex.
func NewID32() string {
	b := make([]byte, Len/2)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Valid reports whether s is a well-formed public id.
func Valid(s string) bool {
	if len(s) != Len {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
