package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/256dpi/xo"

	"github.com/256dpi/board/blaze"
	"github.com/256dpi/board/coal"
	"github.com/256dpi/board/posts"
)

var lungoStore = coal.MustOpen(nil, "test-board-api", xo.Crash)

type env struct {
	handler http.Handler
	memory  *blaze.Memory
	tester  *coal.Tester
	log     *bytes.Buffer
}

func withEnv(t *testing.T, fn func(*testing.T, *env)) {
	tester := coal.NewTester(lungoStore, posts.Collection)
	tester.Clean()

	memory := blaze.NewMemory()
	storage := blaze.NewStorage(memory, xo.Panic)
	storage.Now = func() time.Time {
		return time.UnixMilli(1700000000000)
	}

	var log bytes.Buffer
	handler := New(Options{
		Posts:    posts.NewManager(lungoStore),
		Storage:  storage,
		Assets:   http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "assets") }),
		Logger:   &log,
		Reporter: xo.Panic,
	})

	fn(t, &env{
		handler: handler,
		memory:  memory,
		tester:  tester,
		log:     &log,
	})
}

func testRequest(h http.Handler, method, path string, headers map[string]string, payload io.Reader, callback func(*httptest.ResponseRecorder, *http.Request)) {
	r, err := http.NewRequest(method, path, payload)
	if err != nil {
		panic(err)
	}

	w := httptest.NewRecorder()

	for k, v := range headers {
		r.Header.Set(k, v)
	}

	h.ServeHTTP(w, r)

	callback(w, r)
}

func jsonRequest(h http.Handler, path, payload string, callback func(*httptest.ResponseRecorder, *http.Request)) {
	testRequest(h, "POST", path, map[string]string{
		"Content-Type": "application/json",
	}, strings.NewReader(payload), callback)
}

func formRequest(h http.Handler, fields map[string]string, files map[string]string, callback func(*httptest.ResponseRecorder, *http.Request)) {
	// prepare writer
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// write fields
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}

	// write files
	for name, content := range files {
		part, err := writer.CreateFormFile("file", name)
		if err != nil {
			panic(err)
		}
		_, _ = io.WriteString(part, content)
	}

	// close writer
	_ = writer.Close()

	testRequest(h, "POST", "/api/posts", map[string]string{
		"Content-Type": writer.FormDataContentType(),
	}, &buf, callback)
}

type failingService struct{}

func (failingService) List(context.Context) ([]posts.Post, error) {
	return nil, xo.F("store unreachable")
}

func (failingService) Find(context.Context, string) (*posts.Post, error) {
	return nil, xo.F("store unreachable")
}

func (failingService) Create(context.Context, posts.Input) (*posts.Post, error) {
	return nil, xo.F("store unreachable")
}

func (failingService) Like(context.Context, string) (*posts.Post, error) {
	return nil, xo.F("store unreachable")
}

func (failingService) Comment(context.Context, string, string) (*posts.Post, error) {
	return nil, xo.F("store unreachable")
}
