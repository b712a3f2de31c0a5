package media

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hongminglow/packpoint-be/internal/logging"
)

// Upload is an image payload received with a point create or update.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Attachment is a stored upload.
type Attachment struct {
	Key         string
	URL         string
	ContentType string
}

// Attacher uploads optional point images to the blob store.
type Attacher struct {
	store    BlobStore
	maxBytes int64
	log      logging.Logger
}

// NewAttacher creates an attacher enforcing maxBytes per upload.
func NewAttacher(store BlobStore, maxBytes int64) *Attacher {
	return &Attacher{
		store:    store,
		maxBytes: maxBytes,
		log:      logging.GetLogger("media.attacher"),
	}
}

// Attach stores the upload under a fresh unique key. A nil upload is a no-op
// and returns a nil attachment. Any failure means nothing usable was stored.
func (a *Attacher) Attach(ctx context.Context, upload *Upload) (*Attachment, error) {
	if upload == nil {
		return nil, nil
	}
	if a.maxBytes > 0 && int64(len(upload.Data)) > a.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(upload.Data), a.maxBytes)
	}

	contentType, ext, err := Inspect(upload.ContentType, upload.Data)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	key := id.String() + ext

	url, err := a.store.Put(ctx, key, contentType, upload.Data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	a.log.DebugContext(ctx, "image stored", "key", key, "type", contentType, "size", len(upload.Data), "filename", upload.Filename)
	return &Attachment{Key: key, URL: url, ContentType: contentType}, nil
}

// Discard removes a stored attachment. Failures are logged, not returned;
// the caller is already on an error path or the reference is already gone.
func (a *Attacher) Discard(ctx context.Context, attachment *Attachment) {
	if attachment == nil {
		return
	}
	if err := a.store.Delete(context.WithoutCancel(ctx), attachment.Key); err != nil {
		a.log.WarnContext(ctx, "discard image failed; blob orphaned", "key", attachment.Key, "error", err)
		return
	}
	a.log.DebugContext(ctx, "image discarded", "key", attachment.Key)
}

// DiscardURL removes the blob behind a URL previously returned by Attach.
// URLs the store does not recognize are ignored.
func (a *Attacher) DiscardURL(ctx context.Context, url *string) {
	if url == nil {
		return
	}
	key, ok := a.store.KeyFromURL(*url)
	if !ok {
		a.log.DebugContext(ctx, "image url not managed by blob store", "url", *url)
		return
	}
	a.Discard(ctx, &Attachment{Key: key, URL: *url})
}
