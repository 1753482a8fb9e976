package blaze

import (
	"context"
	"errors"
	"io"

	"github.com/256dpi/lungo"
	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GridFS stores blobs in a GridFS bucket.
type GridFS struct {
	bucket *lungo.Bucket
}

// NewGridFS creates a new GridFS service.
func NewGridFS(bucket *lungo.Bucket) *GridFS {
	return &GridFS{
		bucket: bucket,
	}
}

// Initialize will ensure the indexes of the bucket.
func (g *GridFS) Initialize(ctx context.Context) error {
	// ensure indexes
	err := g.bucket.EnsureIndexes(ctx, false)
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// Upload implements the Service interface.
func (g *GridFS) Upload(ctx context.Context, name, mediaType string, r io.Reader) (int64, error) {
	// check name
	if !ValidName(name) {
		return 0, ErrInvalidName.Wrap()
	}

	// check existing
	existing, err := g.bucket.OpenDownloadStreamByName(ctx, name)
	if err == nil {
		_ = existing.Close()
		return 0, ErrUsedName.Wrap()
	} else if !errors.Is(err, lungo.ErrFileNotFound) {
		return 0, xo.W(err)
	}

	// open stream
	stream, err := g.bucket.OpenUploadStream(ctx, name, options.GridFSUpload().SetMetadata(bson.M{
		"contentType": mediaType,
	}))
	if err != nil {
		return 0, xo.W(err)
	}

	// write stream
	n, err := io.Copy(stream, r)
	if err != nil {
		_ = stream.Abort()
		return 0, xo.W(err)
	}

	// close stream
	err = stream.Close()
	if err != nil {
		return 0, xo.W(err)
	}

	return n, nil
}

// Download implements the Service interface.
func (g *GridFS) Download(ctx context.Context, name string) (Download, error) {
	// check name
	if !ValidName(name) {
		return nil, ErrInvalidName.Wrap()
	}

	// open stream
	stream, err := g.bucket.OpenDownloadStreamByName(ctx, name)
	if errors.Is(err, lungo.ErrFileNotFound) {
		return nil, ErrNotFound.Wrap()
	} else if err != nil {
		return nil, xo.W(err)
	}

	return stream, nil
}
