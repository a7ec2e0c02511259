// Package determinism provides content fingerprints and ordered iteration.
// Tariffs and usage declarations are fingerprinted so a report can be traced
// back to the exact inputs that produced it.
package determinism

import (
	"cmp"
	"crypto/sha256"
	"encoding/hex"
	"slices"

	"github.com/goccy/go-json"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// Fingerprint hashes the JSON encoding of v. Map keys are encoded sorted,
// so equal values always produce equal hashes.
func Fingerprint(v any) (ContentHash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ContentHash{}, err
	}
	return ComputeHash(data), nil
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex digits, enough to tell inputs apart in logs
func (h ContentHash) Short() string {
	return h.Hex()[:12]
}

// IsZero reports whether the hash was never computed
func (h ContentHash) IsZero() bool {
	return h == ContentHash{}
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Short()
}

// MarshalText implements encoding.TextMarshaler
func (h ContentHash) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// SortedKeys returns the keys of m in ascending order
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
