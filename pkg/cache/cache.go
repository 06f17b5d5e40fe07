// Package cache provides artifact caching for rendered plots.
//
// Converting SVG to PDF or PNG shells out to rsvg-convert, which dominates
// render time. The cache stores converted artifacts keyed by a hash of the
// source SVG plus the target format, so repeated renders of an identical
// plot skip the external tool entirely.
//
// Two implementations are provided:
//   - [FileCache]: file-backed, for CLI usage (~/.cache/roseplot)
//   - [NullCache]: no-op, for --no-cache and tests
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores rendered artifacts by key.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for a converted artifact. Conversion
// output is fully determined by the source SVG, the target format, and the
// raster scale, so those are exactly what gets hashed.
func ArtifactKey(svg []byte, format string, scale float64) string {
	return fmt.Sprintf("artifact:%s:%s:%.2f", Hash(svg), format, scale)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
