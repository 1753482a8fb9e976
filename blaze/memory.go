package blaze

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/256dpi/xo"
)

// Blob is a blob stored by the memory service.
type Blob struct {
	Type  string
	Bytes []byte
}

// Memory is a service for testing purposes that stores blobs in memory.
type Memory struct {
	blobs map[string]*Blob
	mutex sync.Mutex
}

// NewMemory will create a new memory service.
func NewMemory() *Memory {
	return &Memory{
		blobs: map[string]*Blob{},
	}
}

// Upload implements the Service interface.
func (m *Memory) Upload(_ context.Context, name, mediaType string, r io.Reader) (int64, error) {
	// check name
	if !ValidName(name) {
		return 0, ErrInvalidName.Wrap()
	}

	// read data
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, xo.W(err)
	}

	// acquire mutex
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// check blob
	if _, ok := m.blobs[name]; ok {
		return 0, ErrUsedName.Wrap()
	}

	// store blob
	m.blobs[name] = &Blob{
		Type:  mediaType,
		Bytes: data,
	}

	return int64(len(data)), nil
}

// Download implements the Service interface.
func (m *Memory) Download(_ context.Context, name string) (Download, error) {
	// check name
	if !ValidName(name) {
		return nil, ErrInvalidName.Wrap()
	}

	// acquire mutex
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// get blob
	blob, ok := m.blobs[name]
	if !ok {
		return nil, ErrNotFound.Wrap()
	}

	return &memoryDownload{
		Reader: bytes.NewReader(blob.Bytes),
	}, nil
}

// Get will return the named blob if it exists.
func (m *Memory) Get(name string) *Blob {
	// acquire mutex
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.blobs[name]
}

type memoryDownload struct {
	*bytes.Reader
}

func (*memoryDownload) Close() error {
	return nil
}
