package blaze

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/256dpi/xo"
)

// Disk stores blobs as files in a directory.
type Disk struct {
	dir string
}

// NewDisk creates a new disk service. The directory is created on the first
// upload.
func NewDisk(dir string) *Disk {
	return &Disk{
		dir: dir,
	}
}

// Upload implements the Service interface.
func (d *Disk) Upload(ctx context.Context, name, _ string, r io.Reader) (int64, error) {
	// check name
	if !ValidName(name) {
		return 0, ErrInvalidName.Wrap()
	}

	// check context
	if err := ctx.Err(); err != nil {
		return 0, xo.W(err)
	}

	// ensure directory
	err := os.MkdirAll(d.dir, 0755)
	if err != nil {
		return 0, xo.W(err)
	}

	// create file
	file, err := os.OpenFile(filepath.Join(d.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return 0, ErrUsedName.Wrap()
	} else if err != nil {
		return 0, xo.W(err)
	}

	// write file
	n, err := io.Copy(file, r)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return 0, xo.W(err)
	}

	// close file
	err = file.Close()
	if err != nil {
		_ = os.Remove(file.Name())
		return 0, xo.W(err)
	}

	return n, nil
}

// Download implements the Service interface.
func (d *Disk) Download(_ context.Context, name string) (Download, error) {
	// check name
	if !ValidName(name) {
		return nil, ErrInvalidName.Wrap()
	}

	// open file
	file, err := os.Open(filepath.Join(d.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound.Wrap()
	} else if err != nil {
		return nil, xo.W(err)
	}

	// check file
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, xo.W(err)
	} else if info.IsDir() {
		_ = file.Close()
		return nil, ErrNotFound.Wrap()
	}

	return file, nil
}
