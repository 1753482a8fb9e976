package posts

import (
	"context"

	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/256dpi/board/coal"
)

var returnAfterUpdate = options.FindOneAndUpdate().SetReturnDocument(options.After)

// Manager runs post operations against a store.
type Manager struct {
	store *coal.Store
}

// NewManager creates and returns a new manager.
func NewManager(store *coal.Store) *Manager {
	return &Manager{
		store: store,
	}
}

// List will return all posts in insertion order.
func (m *Manager) List(ctx context.Context) ([]Post, error) {
	// trace
	ctx, span := xo.Trace(ctx, "posts/Manager.List")
	defer span.End()

	// find posts
	cursor, err := m.store.C(Collection).Find(ctx, bson.M{}, options.Find().SetSort(bson.D{
		{Key: "_id", Value: 1},
	}))
	if err != nil {
		return nil, xo.W(err)
	}

	// decode posts
	var list []Post
	err = cursor.All(ctx, &list)
	if err != nil {
		return nil, xo.W(err)
	}

	// normalize posts
	if list == nil {
		list = []Post{}
	}
	for i := range list {
		list[i].normalize()
	}

	return list, nil
}

// Find will return the post with the specified hex encoded id.
func (m *Manager) Find(ctx context.Context, id string) (*Post, error) {
	// trace
	ctx, span := xo.Trace(ctx, "posts/Manager.Find")
	span.Tag("id", id)
	defer span.End()

	// parse id
	oid, err := coal.FromHex(id)
	if err != nil {
		return nil, ErrNotFound.Wrap()
	}

	// find post
	var post Post
	err = m.store.C(Collection).FindOne(ctx, bson.M{
		"_id": oid,
	}).Decode(&post)
	if coal.IsMissing(err) {
		return nil, ErrNotFound.Wrap()
	} else if err != nil {
		return nil, xo.W(err)
	}

	// normalize post
	post.normalize()

	return &post, nil
}

// Create will validate the input and insert a new post with no likes and no
// comments.
func (m *Manager) Create(ctx context.Context, input Input) (*Post, error) {
	// trace
	ctx, span := xo.Trace(ctx, "posts/Manager.Create")
	defer span.End()

	// validate input
	err := input.Validate()
	if err != nil {
		return nil, err
	}

	// prepare post
	post := Post{
		ID:       coal.New(),
		Title:    input.Title,
		Content:  input.Content,
		File:     input.File,
		Likes:    0,
		Comments: []Comment{},
	}

	// insert post
	_, err = m.store.C(Collection).InsertOne(ctx, &post)
	if err != nil {
		return nil, xo.W(err)
	}

	return &post, nil
}

// Like will increment the likes of the specified post by one and return the
// updated post. The increment is applied atomically by the store.
func (m *Manager) Like(ctx context.Context, id string) (*Post, error) {
	// trace
	ctx, span := xo.Trace(ctx, "posts/Manager.Like")
	span.Tag("id", id)
	defer span.End()

	return m.update(ctx, id, bson.M{
		"$inc": bson.M{
			"likes": 1,
		},
	})
}

// Comment will append a comment with the provided text to the specified post
// and return the updated post. The text is not validated.
func (m *Manager) Comment(ctx context.Context, id, text string) (*Post, error) {
	// trace
	ctx, span := xo.Trace(ctx, "posts/Manager.Comment")
	span.Tag("id", id)
	defer span.End()

	return m.update(ctx, id, bson.M{
		"$push": bson.M{
			"comments": Comment{
				Text: text,
			},
		},
	})
}

func (m *Manager) update(ctx context.Context, id string, update bson.M) (*Post, error) {
	// parse id
	oid, err := coal.FromHex(id)
	if err != nil {
		return nil, ErrNotFound.Wrap()
	}

	// update post
	var post Post
	err = m.store.C(Collection).FindOneAndUpdate(ctx, bson.M{
		"_id": oid,
	}, update, returnAfterUpdate).Decode(&post)
	if coal.IsMissing(err) {
		return nil, ErrNotFound.Wrap()
	} else if err != nil {
		return nil, xo.W(err)
	}

	// normalize post
	post.normalize()

	return &post, nil
}
