// Package upload turns a request body into a stored attachment and reports
// the stored attachment back to the caller.
//
// Handle is the transport-independent core: it reads the whole body, stores
// it and returns either a Response or an *Error tagged with the failure kind.
// Upload adapts Handle to HTTP.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/radif/attachments/internal/attachment"
)

// ErrNamespaceRequired is returned when an upload has no namespace to store into.
var ErrNamespaceRequired = errors.New("upload namespace required")

// Store persists attachment content. *attachment.Service implements it.
type Store interface {
	Store(ctx context.Context, namespace string, content []byte, mediaType string) (attachment.Descriptor, error)
}

// Kind classifies an upload failure.
type Kind int

const (
	// KindNamespace means no namespace could be resolved for the caller.
	KindNamespace Kind = iota + 1
	// KindRead means the request body could not be read to completion.
	KindRead
	// KindStorage means the store could not persist the content.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNamespace:
		return "namespace"
	case KindRead:
		return "read"
	case KindStorage:
		return "storage"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is returned by Handle. Err is the underlying failure, untouched.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("upload %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var uerr *Error
	if errors.As(err, &uerr) {
		return uerr.Kind
	}
	return 0
}

// Response is the body of a successful upload.
type Response struct {
	BlobID string `json:"blobId"`
	Type   string `json:"type"`
	Size   int64  `json:"size"`
}

// EncodeFunc serializes a Response body.
type EncodeFunc func(v interface{}) ([]byte, error)

// Handler uploads request bodies into a Store. It keeps no state between
// calls and may be used from many goroutines at once.
type Handler struct {
	store    Store
	encode   EncodeFunc
	maxBytes int64
}

// NewHandler creates a Handler. maxBytes caps HTTP request bodies; zero
// disables the cap.
func NewHandler(store Store, encode EncodeFunc, maxBytes int64) *Handler {
	return &Handler{store: store, encode: encode, maxBytes: maxBytes}
}

// Handle reads body to completion and stores it under namespace with the
// given media type. The media type is kept verbatim and the size is the
// number of bytes actually read.
func (h *Handler) Handle(ctx context.Context, namespace, mediaType string, body io.Reader) (Response, error) {
	if namespace == "" {
		return Response{}, &Error{Kind: KindNamespace, Err: ErrNamespaceRequired}
	}

	content, err := io.ReadAll(body)
	if err != nil {
		return Response{}, &Error{Kind: KindRead, Err: err}
	}

	desc, err := h.store.Store(ctx, namespace, content, mediaType)
	if err != nil {
		return Response{}, &Error{Kind: KindStorage, Err: err}
	}

	return Response{
		BlobID: desc.ID,
		Type:   desc.MediaType,
		Size:   desc.Size,
	}, nil
}
