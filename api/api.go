// Package api implements the HTTP interface of the board.
package api

import (
	"context"
	"io"
	"net/http"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"
	"github.com/gorilla/mux"

	"github.com/256dpi/board/blaze"
	"github.com/256dpi/board/posts"
)

// Service describes the post operations served by the API.
type Service interface {
	List(ctx context.Context) ([]posts.Post, error)
	Find(ctx context.Context, id string) (*posts.Post, error)
	Create(ctx context.Context, input posts.Input) (*posts.Post, error)
	Like(ctx context.Context, id string) (*posts.Post, error)
	Comment(ctx context.Context, id, text string) (*posts.Post, error)
}

// Options configures the API handler.
type Options struct {
	// The post service.
	Posts Service

	// The storage used for uploaded files.
	Storage *blaze.Storage

	// The handler that serves the frontend. If absent, only the API and the
	// uploads are served.
	Assets http.Handler

	// The limit for JSON request bodies.
	//
	// Default: 8M.
	BodyLimit int64

	// The limit for multipart upload requests. Zero means no limit.
	UploadLimit int64

	// The writer that receives request log lines. If absent, requests are
	// not logged.
	Logger io.Writer

	// The reporter that receives internal errors.
	Reporter func(error)
}

// New creates and returns the API handler.
func New(opts Options) http.Handler {
	// set default body limit
	if opts.BodyLimit == 0 {
		opts.BodyLimit = serve.MustByteSize("8M")
	}

	// prepare handler
	h := &handler{opts: opts}

	// create router
	router := mux.NewRouter()

	// add post routes
	router.HandleFunc("/api/posts", h.list).Methods("GET")
	router.HandleFunc("/api/posts", h.create).Methods("POST")
	router.HandleFunc("/api/posts/{postId}", h.find).Methods("GET")
	router.HandleFunc("/api/posts/like/{postId}", h.like).Methods("POST")
	router.HandleFunc("/api/posts/comment/{postId}", h.comment).Methods("POST")
	router.PathPrefix("/api/").HandlerFunc(h.notFound)

	// add uploads
	router.PathPrefix("/uploads/").Handler(opts.Storage.Server("/uploads/")).Methods("GET", "HEAD")

	// add assets
	if opts.Assets != nil {
		router.PathPrefix("/").Handler(opts.Assets).Methods("GET", "HEAD")
	}

	// prepare chain
	chain := []interface{}{xo.RootHandler()}
	if opts.Logger != nil {
		chain = append(chain, RequestLogger(opts.Logger))
	}
	chain = append(chain, Protector(), router)

	return serve.Compose(chain...)
}
