package api

import (
	"net/http"

	"github.com/rs/cors"
)

// Protector constructs a middleware that allows cross-origin requests from
// any origin.
func Protector() func(http.Handler) http.Handler {
	return NewProtector(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Request-ID"},
		AllowedMethods: []string{"GET", "HEAD", "POST"},
		ExposedHeaders: []string{"X-Request-ID"},
	})
}

// NewProtector constructs a middleware that handles CORS using the specified
// options.
func NewProtector(options cors.Options) func(http.Handler) http.Handler {
	c := cors.New(options)

	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
