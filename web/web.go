// Package web embeds and serves the frontend.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed dist
var dist embed.FS

// Assets returns the embedded frontend files.
func Assets() fs.FS {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic(err)
	}

	return sub
}

// DefaultAssetServer constructs an asset server that serves the embedded
// frontend on the root path.
func DefaultAssetServer() http.Handler {
	return NewAssetServer("/", Assets())
}

// NewAssetServer constructs an asset server handler that serves the provided
// file system on a specified path and serves the index file for not found
// paths which is needed to run single page applications.
func NewAssetServer(prefix string, files fs.FS) http.Handler {
	// ensure prefix
	prefix = "/" + strings.Trim(prefix, "/")

	// create file server
	fileServer := http.FileServer(http.FS(files))

	h := func(w http.ResponseWriter, r *http.Request) {
		// pre-check if file does exist
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "."
		}
		info, err := fs.Stat(files, name)
		if err != nil || (info.IsDir() && name != ".") {
			r.URL.Path = "/"
		}

		// serve file
		fileServer.ServeHTTP(w, r)
	}

	return http.StripPrefix(strings.TrimSuffix(prefix, "/"), http.HandlerFunc(h))
}
