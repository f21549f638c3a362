// Package blob defines the object store capability interface used by the media
// workflow, plus its S3 implementation.
package blob

import (
	"context"
	"io"
)

// Store is the capability interface over the managed object store. Upload is a
// plain awaited call: callers commit their document only after it returns nil.
type Store interface {
	// Upload streams the object bytes under name.
	Upload(ctx context.Context, name, contentType string, body io.Reader) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error

	// PublicURL derives the public URL for an object name.
	PublicURL(name string) string
}
