package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Combine folds a sequence of already-computed hashes into one, in the
// order given. The result store uses this to build its (model, config,
// site) cache key — order matters, callers must be consistent about it.
func Combine(parts ...Hash) Hash {
	var buf []byte
	for _, p := range parts {
		buf = append(buf, []byte(p)...)
		buf = append(buf, 0)
	}
	return NewHash(buf)
}

// HashString hashes a formatted value; a convenience for callers building
// cache keys out of scalar fields.
func HashString(format string, args ...interface{}) Hash {
	return NewHash([]byte(fmt.Sprintf(format, args...)))
}
