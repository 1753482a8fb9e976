// Package coal provides access to the document store.
package coal

import (
	"context"
	"net/url"
	"strings"

	"github.com/256dpi/lungo"
	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MustConnect will call Connect and panic on errors.
func MustConnect(uri string, reporter func(error)) *Store {
	// connect store
	store, err := Connect(uri, reporter)
	if err != nil {
		panic(err)
	}

	return store
}

// Connect will connect to a MongoDB server using the specified URI. The path
// of the URI selects the database. The reporter is currently only used by
// in-memory stores but is kept for symmetry with Open.
func Connect(uri string, reporter func(error)) (*Store, error) {
	// parse url
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, xo.W(err)
	}

	// get default db
	defaultDB := strings.Trim(parsedURL.Path, "/")
	if defaultDB == "" {
		return nil, xo.F("missing database in uri")
	}

	// create client
	client, err := lungo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, xo.W(err)
	}

	// ping server
	err = client.Ping(context.Background(), nil)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, xo.W(err)
	}

	return &Store{
		Client:   client,
		DB:       client.Database(defaultDB),
		reporter: reporter,
	}, nil
}

// MustOpen will call Open and panic on errors.
func MustOpen(store lungo.Store, db string, reporter func(error)) *Store {
	// open store
	s, err := Open(store, db, reporter)
	if err != nil {
		panic(err)
	}

	return s
}

// Open will open a lungo engine using the provided store. If no store is
// provided a new memory store is created. Background errors of the engine are
// forwarded to the reporter.
func Open(store lungo.Store, db string, reporter func(error)) (*Store, error) {
	// ensure store
	if store == nil {
		store = lungo.NewMemoryStore()
	}

	// open engine
	client, engine, err := lungo.Open(context.Background(), lungo.Options{
		Store:        store,
		ExpireErrors: reporter,
	})
	if err != nil {
		return nil, xo.W(err)
	}

	return &Store{
		Client:   client,
		DB:       client.Database(db),
		Lungo:    true,
		engine:   engine,
		reporter: reporter,
	}, nil
}

// Store manages the usage of a database client.
type Store struct {
	// The client used by the store.
	Client lungo.IClient

	// The database used by the store.
	DB lungo.IDatabase

	// Whether the store is backed by a lungo engine.
	Lungo bool

	engine   *lungo.Engine
	reporter func(error)
}

// C will return the named collection.
func (s *Store) C(name string) lungo.ICollection {
	return s.DB.Collection(name)
}

// Bucket will return a GridFS bucket with the specified name.
func (s *Store) Bucket(name string) *lungo.Bucket {
	return lungo.NewBucket(s.DB, options.GridFSBucket().SetName(name))
}

// Close will close the store and its associated client or engine.
func (s *Store) Close() error {
	// disconnect client
	err := s.Client.Disconnect(context.Background())
	if err != nil {
		return xo.W(err)
	}

	// close engine
	if s.engine != nil {
		s.engine.Close()
	}

	return nil
}
