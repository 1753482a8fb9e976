package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestLogger constructs a middleware that logs incoming requests to the
// specified writer. It also ensures every request carries a request id that is
// echoed in the "X-Request-ID" response header.
func RequestLogger(out io.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// get or generate request id
			id := r.Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", id)

			// wrap response writer
			wrw := wrapResponseWriter(w)

			// save start
			start := time.Now()

			// call next handler
			next.ServeHTTP(wrw, r)

			// get request duration
			duration := time.Since(start).String()

			// log request
			_, _ = fmt.Fprintf(out, "[%s] (%d) %s - %s %s\n", r.Method, wrw.status, r.URL.Path, duration, id)
		})
	}
}

type wrappedResponseWriter struct {
	status int
	http.ResponseWriter
}

func wrapResponseWriter(res http.ResponseWriter) *wrappedResponseWriter {
	// default the status code to 200
	return &wrappedResponseWriter{http.StatusOK, res}
}

func (w *wrappedResponseWriter) WriteHeader(statusCode int) {
	// store the status code
	w.status = statusCode

	// write the status code onward
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *wrappedResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
