package attachment

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/radif/attachments/internal/storage"
)

const blobPrefix = "blobs/"

// Service stores attachments: blob bytes go to storage, metadata to the
// repository. It holds no per-request state and is safe for concurrent use.
type Service struct {
	repo  Repository
	blobs storage.Storage
	now   func() time.Time
}

// NewService creates a new attachment Service.
func NewService(repo Repository, blobs storage.Storage) *Service {
	return &Service{repo: repo, blobs: blobs, now: time.Now}
}

// Store persists content with its declared media type and returns the new
// attachment's descriptor. The blob is written only if no blob with the same
// digest exists yet; the metadata row is always new.
func (s *Service) Store(ctx context.Context, namespace string, content []byte, mediaType string) (Descriptor, error) {
	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])
	key := blobKey(digest)

	exists, err := s.blobs.Exists(ctx, key)
	if err != nil {
		return Descriptor{}, fmt.Errorf("check blob %s: %w", digest, err)
	}
	if !exists {
		if err := s.blobs.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), mediaType); err != nil {
			return Descriptor{}, fmt.Errorf("upload blob %s: %w", digest, err)
		}
	}

	rec := Record{
		ID:        uuid.NewString(),
		Namespace: namespace,
		Digest:    digest,
		MediaType: mediaType,
		Size:      int64(len(content)),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return Descriptor{}, fmt.Errorf("insert attachment: %w", err)
	}
	return rec.Descriptor(), nil
}

// Lookup returns the descriptor of the attachment id in namespace.
func (s *Service) Lookup(ctx context.Context, namespace, id string) (Descriptor, error) {
	rec, err := s.repo.Get(ctx, namespace, id)
	if err != nil {
		return Descriptor{}, err
	}
	return rec.Descriptor(), nil
}

// Open returns the descriptor and the content of the attachment id in
// namespace. The caller closes the reader.
func (s *Service) Open(ctx context.Context, namespace, id string) (Descriptor, io.ReadCloser, error) {
	rec, err := s.repo.Get(ctx, namespace, id)
	if err != nil {
		return Descriptor{}, nil, err
	}
	rc, err := s.blobs.Download(ctx, blobKey(rec.Digest))
	if err != nil {
		return Descriptor{}, nil, fmt.Errorf("open blob %s: %w", rec.Digest, err)
	}
	return rec.Descriptor(), rc, nil
}

func blobKey(digest string) string {
	return blobPrefix + digest
}
