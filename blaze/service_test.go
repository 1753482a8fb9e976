package blaze

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/256dpi/xo"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"

	"github.com/256dpi/board/coal"
)

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("file-1700000000000.png"))
	assert.True(t, ValidName("file-1700000000000"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("."))
	assert.False(t, ValidName(".."))
	assert.False(t, ValidName("foo/bar.png"))
	assert.False(t, ValidName("../bar.png"))
	assert.False(t, ValidName(`foo\bar.png`))
}

func TestMemoryService(t *testing.T) {
	svc := NewMemory()
	TestService(t, svc)

	blob := svc.Get("file-1.txt")
	assert.Equal(t, &Blob{
		Type:  "text/plain",
		Bytes: []byte("Hello World!"),
	}, blob)
}

func TestDiskService(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")

	svc := NewDisk(dir)
	TestService(t, svc)

	data, err := os.ReadFile(filepath.Join(dir, "file-1.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "Hello World!", string(data))

	err = os.Mkdir(filepath.Join(dir, "folder"), 0755)
	assert.NoError(t, err)

	dl, err := svc.Download(context.Background(), "folder")
	assert.Error(t, err)
	assert.True(t, ErrNotFound.Is(err))
	assert.Nil(t, dl)
}

func TestDiskServiceFailedUpload(t *testing.T) {
	dir := t.TempDir()

	svc := NewDisk(dir)
	n, err := svc.Upload(context.Background(), "file-1.txt", "text/plain", &failingReader{})
	assert.Error(t, err)
	assert.Zero(t, n)

	_, err = os.Stat(filepath.Join(dir, "file-1.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestGridFSService(t *testing.T) {
	store := coal.MustOpen(nil, "test-board-blaze", xo.Crash)
	defer store.Close()

	svc := NewGridFS(store.Bucket("uploads"))
	assert.NoError(t, svc.Initialize(context.Background()))

	TestService(t, svc)
}

func TestMinioService(t *testing.T) {
	endpoint := os.Getenv("TEST_MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("TEST_MINIO_ENDPOINT not set")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	assert.NoError(t, err)

	svc := NewMinio(client, "board-"+strings.ToLower(coal.New().Hex()))
	assert.NoError(t, svc.Initialize(context.Background()))

	TestService(t, svc)
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) {
	return 0, xo.F("failed")
}
