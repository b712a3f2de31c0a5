// Package media stores uploaded point images and coordinates attaching them
// to point writes.
package media

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrBlobNotFound is returned when a key has no stored object.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is the object store behind uploaded images.
type BlobStore interface {
	// Put stores data under key and returns its durable public URL.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// KeyFromURL recovers the key from a URL returned by Put.
	KeyFromURL(url string) (string, bool)
}

// Object is an opened blob ready to be served.
type Object struct {
	io.ReadSeekCloser
	Name    string
	ModTime time.Time
}

// BlobOpener is implemented by stores that can serve their objects directly.
type BlobOpener interface {
	Open(ctx context.Context, key string) (*Object, error)
}
