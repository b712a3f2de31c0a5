package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	// ErrTooLarge is returned for payloads above the configured limit.
	ErrTooLarge = errors.New("image too large")
	// ErrUnsupportedType is returned when the payload is not a supported
	// image or does not match its declared content type.
	ErrUnsupportedType = errors.New("unsupported image type")
	// ErrEmpty is returned for a zero-length payload.
	ErrEmpty = errors.New("empty image")
)

type imageType struct {
	format string
	ext    string
}

var imageTypes = map[string]imageType{
	"image/jpeg": {format: "jpeg", ext: ".jpg"},
	"image/png":  {format: "png", ext: ".png"},
	"image/gif":  {format: "gif", ext: ".gif"},
	"image/webp": {format: "webp", ext: ".webp"},
	"image/tiff": {format: "tiff", ext: ".tiff"},
	"image/bmp":  {format: "bmp", ext: ".bmp"},
}

// Inspect resolves the content type of an upload and checks the bytes decode
// as that type. An empty or generic declared type is replaced by a sniffed one.
// It returns the normalized content type and the file extension to store under.
func Inspect(declared string, data []byte) (contentType, ext string, err error) {
	if len(data) == 0 {
		return "", "", ErrEmpty
	}

	contentType = normalizeType(declared)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = normalizeType(http.DetectContentType(data))
	}

	want, ok := imageTypes[contentType]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("%w: decode: %w", ErrUnsupportedType, err)
	}
	if format != want.format {
		return "", "", fmt.Errorf("%w: declared %s but content is %s", ErrUnsupportedType, contentType, format)
	}

	return contentType, want.ext, nil
}

func normalizeType(raw string) string {
	mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if mediaType == "image/jpg" {
		return "image/jpeg"
	}
	return mediaType
}
