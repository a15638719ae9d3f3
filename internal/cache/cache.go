package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
)

// ResultCache stores reduced images keyed by input content and reduction parameters.
type ResultCache interface {
	// Get returns the cached value and whether the key was present
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Key derives a stable cache key from the input bytes and the reduction
// parameters. Two requests share a key only if both the image content and
// the filter/factor pair match.
func Key(imageData []byte, filter string, factor int) string {
	sum := sha256.Sum256(imageData)
	return fmt.Sprintf("pngreduce:%s:%d:%x", filter, factor, sum)
}
