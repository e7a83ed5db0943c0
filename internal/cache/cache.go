package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched payloads so repeated demo runs stay stable without
// re-hitting the network.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a source URL or request identifier.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return "ske:v1:" + hex.EncodeToString(sum[:])
}
