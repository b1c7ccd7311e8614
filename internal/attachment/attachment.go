// Package attachment persists uploaded blobs and their metadata. Blob bytes
// are content addressed by their SHA-256 digest; every stored attachment gets
// its own id, scoped to the namespace it was uploaded into.
package attachment

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no attachment exists for an id in a namespace.
var ErrNotFound = errors.New("attachment not found")

// Descriptor describes a stored attachment.
type Descriptor struct {
	ID        string
	MediaType string
	Size      int64
}

// Record is the persisted metadata row of an attachment.
type Record struct {
	ID        string
	Namespace string
	Digest    string // hex SHA-256 of the content
	MediaType string
	Size      int64
	CreatedAt time.Time
}

// Descriptor returns the caller-facing view of r.
func (r Record) Descriptor() Descriptor {
	return Descriptor{ID: r.ID, MediaType: r.MediaType, Size: r.Size}
}

// Repository stores attachment metadata.
type Repository interface {
	Insert(ctx context.Context, rec Record) error
	// Get returns ErrNotFound when id does not exist in namespace.
	Get(ctx context.Context, namespace, id string) (*Record, error)
}
