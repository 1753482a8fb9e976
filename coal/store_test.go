package coal

import (
	"context"
	"os"
	"testing"

	"github.com/256dpi/xo"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestOpen(t *testing.T) {
	store := MustOpen(nil, "test-board-coal", xo.Panic)
	assert.NotNil(t, store.Client)
	assert.True(t, store.Lungo)
	assert.Equal(t, "posts", store.C("posts").Name())

	tester := NewTester(store, "posts")
	tester.Insert("posts", bson.M{"_id": New(), "title": "Hello"})
	assert.Equal(t, int64(1), tester.Count("posts"))

	var doc bson.M
	err := store.C("posts").FindOne(context.Background(), bson.M{"title": "Missing"}).Decode(&doc)
	assert.True(t, IsMissing(err))

	tester.Clean()
	assert.Equal(t, int64(0), tester.Count("posts"))

	err = store.Close()
	assert.NoError(t, err)
}

func TestConnect(t *testing.T) {
	uri := os.Getenv("TEST_MONGODB_URI")
	if uri == "" {
		t.Skip("TEST_MONGODB_URI not set")
	}

	store := MustConnect(uri, xo.Panic)
	assert.NotNil(t, store.Client)
	assert.False(t, store.Lungo)

	err := store.Close()
	assert.NoError(t, err)
}

func TestConnectError(t *testing.T) {
	_, err := Connect("mongodb://0.0.0.0", xo.Panic)
	assert.Error(t, err)
	assert.Equal(t, "missing database in uri", err.Error())

	assert.Panics(t, func() {
		MustConnect("mongodb://0.0.0.0", xo.Panic)
	})
}
