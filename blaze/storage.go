// Package blaze implements storage and retrieval of uploaded files.
package blaze

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"
)

// DefaultField is the default form field that carries the uploaded file.
const DefaultField = "file"

// NameAttempts is the number of names tried when a generated name is already
// used. Every attempt advances the timestamp by one millisecond.
const NameAttempts = 10

// Storage accepts uploaded files from multipart requests, stores them using
// a service and serves them back.
type Storage struct {
	// The service used to store blobs.
	Service Service

	// The form field that carries the file.
	//
	// Default: "file".
	Field string

	// The clock used to generate names.
	//
	// Default: time.Now.
	Now func() time.Time

	// The reporter that receives download errors.
	Reporter func(error)
}

// NewStorage creates and returns a new storage.
func NewStorage(service Service, reporter func(error)) *Storage {
	return &Storage{
		Service:  service,
		Field:    DefaultField,
		Now:      time.Now,
		Reporter: reporter,
	}
}

// Name will generate a name for a file with the provided original name. The
// name is composed of the field, the current time in milliseconds and the
// extension of the original name.
func (s *Storage) Name(original string) string {
	return s.nameAt(original, s.now())
}

// Accept will store the file sent under the configured field of the provided
// multipart request and return its generated name. An empty name is returned
// if the request carries no file. Sending more than one file under the field
// yields a safe error. If the generated name is taken, the following
// milliseconds are tried before ErrUsedName is returned.
func (s *Storage) Accept(ctx context.Context, r *http.Request) (string, error) {
	// trace
	ctx, span := xo.Trace(ctx, "blaze/Storage.Accept")
	defer span.End()

	// get file
	file, header, err := r.FormFile(s.field())
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	} else if err != nil {
		return "", xo.W(err)
	}

	// ensure file is closed
	defer file.Close()

	// check count
	if r.MultipartForm != nil && len(r.MultipartForm.File[s.field()]) > 1 {
		return "", xo.SF("expected a single file")
	}

	// determine media type
	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = serve.MimeTypeByExtension(filepath.Ext(header.Filename), true)
	}

	span.Tag("type", mediaType)

	// get time
	now := s.now()

	for i := 0; ; i++ {
		// generate name
		name := s.nameAt(header.Filename, now.Add(time.Duration(i)*time.Millisecond))

		// upload file
		_, err = s.Service.Upload(ctx, name, mediaType, file)
		if ErrUsedName.Is(err) && i < NameAttempts-1 {
			// rewind file
			_, err = file.Seek(0, io.SeekStart)
			if err != nil {
				return "", xo.W(err)
			}

			continue
		} else if err != nil {
			return "", err
		}

		span.Tag("name", name)

		return name, nil
	}
}

// Server returns a handler that serves stored files below the specified
// prefix. Unknown files yield a not found response.
func (s *Storage) Server(prefix string) http.Handler {
	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// get name
		name := strings.TrimPrefix(r.URL.Path, "/")

		// open download
		download, err := s.Service.Download(r.Context(), name)
		if ErrNotFound.Is(err) || ErrInvalidName.Is(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			if s.Reporter != nil {
				s.Reporter(err)
			}
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		// ensure download is closed
		defer download.Close()

		// serve content
		w.Header().Set("Content-Type", serve.MimeTypeByExtension(path.Ext(name), true))
		http.ServeContent(w, r, name, time.Time{}, download)
	}))
}

func (s *Storage) nameAt(original string, t time.Time) string {
	return fmt.Sprintf("%s-%d%s", s.field(), t.UnixMilli(), filepath.Ext(original))
}

func (s *Storage) field() string {
	if s.Field == "" {
		return DefaultField
	}

	return s.Field
}

func (s *Storage) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}

	return s.Now()
}
