package blaze

import (
	"context"
	"io"
	"strings"

	"github.com/stretchr/testify/assert"
)

// Tester is a common interface implemented by test objects.
type Tester interface {
	Errorf(format string, args ...interface{})
}

// TestService will test the specified service for compatibility.
func TestService(t Tester, svc Service) {
	ctx := context.Background()

	n, err := svc.Upload(ctx, "", "text/plain", strings.NewReader("Hello World!"))
	assert.Error(t, err)
	assert.True(t, ErrInvalidName.Is(err))
	assert.Zero(t, n)

	n, err = svc.Upload(ctx, "../file.txt", "text/plain", strings.NewReader("Hello World!"))
	assert.Error(t, err)
	assert.True(t, ErrInvalidName.Is(err))
	assert.Zero(t, n)

	n, err = svc.Upload(ctx, "file-1.txt", "text/plain", strings.NewReader("Hello World!"))
	assert.NoError(t, err)
	assert.Equal(t, int64(12), n)

	n, err = svc.Upload(ctx, "file-1.txt", "text/plain", strings.NewReader("Hello Again!"))
	assert.Error(t, err)
	assert.True(t, ErrUsedName.Is(err))
	assert.Zero(t, n)

	dl, err := svc.Download(ctx, "")
	assert.Error(t, err)
	assert.True(t, ErrInvalidName.Is(err))
	assert.Nil(t, dl)

	dl, err = svc.Download(ctx, "file-2.txt")
	assert.Error(t, err)
	assert.True(t, ErrNotFound.Is(err))
	assert.Nil(t, dl)

	dl, err = svc.Download(ctx, "file-1.txt")
	assert.NoError(t, err)
	if dl == nil {
		return
	}

	data, err := io.ReadAll(dl)
	assert.NoError(t, err)
	assert.Equal(t, "Hello World!", string(data))

	pos, err := dl.Seek(6, io.SeekStart)
	assert.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	data, err = io.ReadAll(dl)
	assert.NoError(t, err)
	assert.Equal(t, "World!", string(data))

	err = dl.Close()
	assert.NoError(t, err)
}
