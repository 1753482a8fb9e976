package blaze

import (
	"context"
	"io"
	"net/http"

	"github.com/256dpi/xo"
	"github.com/minio/minio-go/v7"
)

// Minio stores blobs in a S3 compatible bucket.
type Minio struct {
	client *minio.Client
	bucket string
}

// NewMinio creates a new Minio service.
func NewMinio(client *minio.Client, bucket string) *Minio {
	return &Minio{
		client: client,
		bucket: bucket,
	}
}

// Initialize will create the bucket if it does not exist.
func (m *Minio) Initialize(ctx context.Context) error {
	// check bucket
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return xo.W(err)
	} else if ok {
		return nil
	}

	// make bucket
	err = m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	if err != nil {
		return xo.W(err)
	}

	return nil
}

// Upload implements the Service interface.
func (m *Minio) Upload(ctx context.Context, name, mediaType string, r io.Reader) (int64, error) {
	// check name
	if !ValidName(name) {
		return 0, ErrInvalidName.Wrap()
	}

	// check object
	_, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return 0, ErrUsedName.Wrap()
	} else if !isMinioNotFoundErr(err) {
		return 0, xo.W(err)
	}

	// put object
	info, err := m.client.PutObject(ctx, m.bucket, name, r, -1, minio.PutObjectOptions{
		ContentType: mediaType,
	})
	if err != nil {
		return 0, xo.W(err)
	}

	return info.Size, nil
}

// Download implements the Service interface.
func (m *Minio) Download(ctx context.Context, name string) (Download, error) {
	// check name
	if !ValidName(name) {
		return nil, ErrInvalidName.Wrap()
	}

	// get object
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, xo.W(err)
	}

	// check object
	_, err = obj.Stat()
	if isMinioNotFoundErr(err) {
		_ = obj.Close()
		return nil, ErrNotFound.Wrap()
	} else if err != nil {
		_ = obj.Close()
		return nil, xo.W(err)
	}

	return obj, nil
}

func isMinioNotFoundErr(err error) bool {
	return minio.ToErrorResponse(err).StatusCode == http.StatusNotFound
}
