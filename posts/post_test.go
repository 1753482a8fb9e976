package posts

import (
	"encoding/json"
	"testing"

	"github.com/256dpi/xo"
	"github.com/stretchr/testify/assert"

	"github.com/256dpi/board/coal"
)

func TestInputValidate(t *testing.T) {
	input := Input{Title: "Hi", Content: "World"}
	assert.NoError(t, input.Validate())

	input = Input{Title: "Hi", Content: "World", File: "file-1.png"}
	assert.NoError(t, input.Validate())

	for _, input := range []Input{
		{},
		{Title: "Hi"},
		{Content: "World"},
		{File: "file-1.png"},
	} {
		err := input.Validate()
		assert.Error(t, err)
		assert.True(t, xo.IsSafe(err))
		assert.Equal(t, "Title and content are required fields", xo.AsSafe(err).Msg)
	}
}

func TestPostJSON(t *testing.T) {
	id := coal.New()
	post := Post{
		ID:       id,
		Title:    "Hi",
		Content:  "World",
		Comments: []Comment{},
	}

	buf, err := json.Marshal(post)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "`+id.Hex()+`",
		"title": "Hi",
		"content": "World",
		"likes": 0,
		"comments": []
	}`, string(buf))

	post.File = "file-1.png"
	post.Likes = 2
	post.Comments = append(post.Comments, Comment{Text: "nice"})

	buf, err = json.Marshal(post)
	assert.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "`+id.Hex()+`",
		"title": "Hi",
		"content": "World",
		"file": "file-1.png",
		"likes": 2,
		"comments": [{"text": "nice"}]
	}`, string(buf))
}
