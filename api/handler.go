package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"
	"github.com/gorilla/mux"

	"github.com/256dpi/board/posts"
)

const multipartMemory = 32 << 20

type handler struct {
	opts Options
}

type createBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type commentBody struct {
	Text string `json:"text"`
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	// list posts
	list, err := h.opts.Posts.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}

	h.write(w, http.StatusOK, list)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	// handle json
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		h.createJSON(w, r)
		return
	}

	// limit body
	if h.opts.UploadLimit > 0 {
		serve.LimitBody(w, r, h.opts.UploadLimit)
	}

	// parse form
	err := r.ParseMultipartForm(multipartMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		h.fail(w, h.bodyError(err, "Invalid form data"))
		return
	}

	// ensure temporary files are removed
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	// prepare input
	input := posts.Input{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}

	// validate input before the file is stored
	err = input.Validate()
	if err != nil {
		h.fail(w, err)
		return
	}

	// store file
	input.File, err = h.opts.Storage.Accept(r.Context(), r)
	if err != nil {
		h.fail(w, err)
		return
	}

	// create post
	post, err := h.opts.Posts.Create(r.Context(), input)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.write(w, http.StatusCreated, post)
}

func (h *handler) createJSON(w http.ResponseWriter, r *http.Request) {
	// limit body
	serve.LimitBody(w, r, h.opts.BodyLimit)

	// decode body
	var body createBody
	err := h.decode(r, &body)
	if err != nil {
		h.fail(w, err)
		return
	}

	// create post
	post, err := h.opts.Posts.Create(r.Context(), posts.Input{
		Title:   body.Title,
		Content: body.Content,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	h.write(w, http.StatusCreated, post)
}

func (h *handler) find(w http.ResponseWriter, r *http.Request) {
	// find post
	post, err := h.opts.Posts.Find(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		h.fail(w, err)
		return
	}

	h.write(w, http.StatusOK, post)
}

func (h *handler) like(w http.ResponseWriter, r *http.Request) {
	// like post
	post, err := h.opts.Posts.Like(r.Context(), mux.Vars(r)["postId"])
	if err != nil {
		h.fail(w, err)
		return
	}

	h.write(w, http.StatusOK, post)
}

func (h *handler) comment(w http.ResponseWriter, r *http.Request) {
	// limit body
	serve.LimitBody(w, r, h.opts.BodyLimit)

	// decode body
	var body commentBody
	err := h.decode(r, &body)
	if err != nil {
		h.fail(w, err)
		return
	}

	// comment post
	post, err := h.opts.Posts.Comment(r.Context(), mux.Vars(r)["postId"], body.Text)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.write(w, http.StatusOK, post)
}

func (h *handler) notFound(w http.ResponseWriter, _ *http.Request) {
	h.error(w, http.StatusNotFound, "Not Found")
}

// decode will strictly decode the JSON request body. An empty body is treated
// as an empty object.
func (h *handler) decode(r *http.Request, value interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(value)
	if err != nil && !errors.Is(err, io.EOF) {
		return h.bodyError(err, "Invalid request body")
	}

	return nil
}

func (h *handler) bodyError(err error, msg string) error {
	// check limit
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || strings.HasSuffix(err.Error(), serve.ErrBodyLimitExceeded.Error()) {
		return errBodyLimit.Wrap()
	}

	return xo.SF(msg)
}

func (h *handler) write(w http.ResponseWriter, status int, value interface{}) {
	// encode value
	buf, err := json.Marshal(value)
	if err != nil {
		h.fail(w, xo.W(err))
		return
	}

	// write response
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}
