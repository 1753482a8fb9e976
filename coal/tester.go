package coal

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// A Tester provides facilities to test code that uses a store.
type Tester struct {
	// The store to use for cleaning the database.
	Store *Store

	// The managed collections.
	Collections []string
}

// NewTester returns a new tester.
func NewTester(store *Store, collections ...string) *Tester {
	return &Tester{
		Store:       store,
		Collections: collections,
	}
}

// Clean will remove all documents from the managed collections.
func (t *Tester) Clean() {
	for _, name := range t.Collections {
		// remove all is faster than dropping the collection
		_, err := t.Store.C(name).DeleteMany(context.Background(), bson.M{})
		if err != nil {
			panic(err)
		}
	}
}

// Count will return the number of documents in the named collection.
func (t *Tester) Count(name string) int64 {
	// count documents
	n, err := t.Store.C(name).CountDocuments(context.Background(), bson.M{})
	if err != nil {
		panic(err)
	}

	return n
}

// Insert will insert the specified document into the named collection.
func (t *Tester) Insert(name string, doc interface{}) {
	// insert document
	_, err := t.Store.C(name).InsertOne(context.Background(), doc)
	if err != nil {
		panic(err)
	}
}
