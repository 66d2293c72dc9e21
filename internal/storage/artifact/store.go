// Package artifact stores the published dashboard artifacts: data.json and
// the per-strategy report files it links to.
package artifact

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when nothing exists at the path.
var ErrNotFound = errors.New("artifact not found")

// Store is implemented by every artifact backend. Paths are slash separated
// and relative to the backend root.
type Store interface {
	// Write stores data at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths under the prefix
	List(ctx context.Context, prefix string) ([]string, error)
}
