package api

import (
	"encoding/json"
	"net/http"

	"github.com/256dpi/xo"

	"github.com/256dpi/board/posts"
)

var errBodyLimit = xo.BF("body limit exceeded")

type errorBody struct {
	Error string `json:"error"`
}

// fail will map the error to a response. Validation errors are safe errors
// and yield a bad request with their message. Errors that are neither safe
// nor known are reported and yield an internal server error.
func (h *handler) fail(w http.ResponseWriter, err error) {
	switch {
	case posts.ErrNotFound.Is(err):
		h.error(w, http.StatusNotFound, "Post not found")
	case errBodyLimit.Is(err):
		h.error(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case xo.IsSafe(err):
		h.error(w, http.StatusBadRequest, xo.AsSafe(err).Msg)
	default:
		if h.opts.Reporter != nil {
			h.opts.Reporter(err)
		}
		h.error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (h *handler) error(w http.ResponseWriter, status int, msg string) {
	// encode error
	buf, _ := json.Marshal(errorBody{Error: msg})

	// write response
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}
