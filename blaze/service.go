package blaze

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/256dpi/xo"
)

// ErrInvalidName is returned if the provided name cannot be used for a blob.
var ErrInvalidName = xo.BF("invalid name")

// ErrUsedName is returned if a blob with the provided name already exists.
var ErrUsedName = xo.BF("used name")

// ErrNotFound is returned if there is no blob with the provided name.
var ErrNotFound = xo.BF("not found")

// Download handles the download of a blob.
type Download interface {
	io.ReadSeekCloser
}

// Service is responsible for storing blobs by name.
type Service interface {
	// Upload should store a new blob with the data read from the reader and
	// return the number of bytes written. Existing blobs are never replaced.
	Upload(ctx context.Context, name, mediaType string, r io.Reader) (int64, error)

	// Download should open the named blob for reading.
	Download(ctx context.Context, name string) (Download, error)
}

// ValidName returns whether the provided name is a plain file name that may be
// used as a blob name.
func ValidName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		path.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
