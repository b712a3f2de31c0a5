package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	dirPrefixLength = 2
	dirPrefixDepth  = 2
)

var validKey = regexp.MustCompile(`^[0-9a-z][0-9a-z-]{3,}\.[0-9a-z]+$`)

// FileSystemStore keeps blobs on local disk under a fan-out directory tree
// and exposes them below a public base URL.
type FileSystemStore struct {
	basedir   string
	publicURL string
}

var (
	_ BlobStore  = (*FileSystemStore)(nil)
	_ BlobOpener = (*FileSystemStore)(nil)
)

// NewFileSystemStore creates basedir if needed.
func NewFileSystemStore(basedir, publicURL string) (*FileSystemStore, error) {
	if err := os.MkdirAll(basedir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir all: %w", err)
	}
	return &FileSystemStore{
		basedir:   basedir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put writes to a temp file and renames it into place so readers never see a
// partial object.
func (fs *FileSystemStore) Put(ctx context.Context, key, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	filename, err := fs.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return "", fmt.Errorf("mkdir all: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	defer os.Remove(tmp.Name())

	if n, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write: %w", err)
	} else if n != len(data) {
		_ = tmp.Close()
		return "", fmt.Errorf("write: short write %d of %d bytes", n, len(data))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}

	return fs.publicURL + "/" + key, nil
}

// Delete removes a stored blob.
func (fs *FileSystemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	filename, err := fs.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(filename); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBlobNotFound, key)
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// KeyFromURL implements BlobStore.
func (fs *FileSystemStore) KeyFromURL(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, fs.publicURL+"/")
	if !ok || !validKey.MatchString(key) {
		return "", false
	}
	return key, true
}

// Open implements BlobOpener.
func (fs *FileSystemStore) Open(_ context.Context, key string) (*Object, error) {
	filename, err := fs.path(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
	}
	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBlobNotFound, key)
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}
	return &Object{ReadSeekCloser: file, Name: key, ModTime: info.ModTime()}, nil
}

// path fans keys out as ab/cd/abcd....ext to keep directories small.
func (fs *FileSystemStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	parts := []string{fs.basedir}
	for i := 0; i < dirPrefixDepth; i++ {
		parts = append(parts, key[i*dirPrefixLength:(i+1)*dirPrefixLength])
	}
	return filepath.Join(append(parts, key)...), nil
}
