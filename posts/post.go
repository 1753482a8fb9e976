// Package posts implements the post model and its operations.
package posts

import (
	"github.com/256dpi/xo"
	"github.com/asaskevich/govalidator"

	"github.com/256dpi/board/coal"
)

// Collection is the name of the collection that stores posts.
const Collection = "posts"

// ErrNotFound is returned if a post does not exist.
var ErrNotFound = xo.BF("post not found")

// Comment is a free text annotation embedded in a post.
type Comment struct {
	Text string `json:"text" bson:"text"`
}

// Post is a user authored entry with likes and comments.
type Post struct {
	ID       coal.ID   `json:"id" bson:"_id"`
	Title    string    `json:"title" bson:"title"`
	Content  string    `json:"content" bson:"content"`
	File     string    `json:"file,omitempty" bson:"file,omitempty"`
	Likes    int64     `json:"likes" bson:"likes"`
	Comments []Comment `json:"comments" bson:"comments"`
}

func (p *Post) normalize() {
	// documents written by other clients may lack comments
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
}

// Input describes a post to be created.
type Input struct {
	Title   string `valid:"required"`
	Content string `valid:"required"`
	File    string `valid:"-"`
}

// Validate will return a safe error if the title or content is missing.
func (i *Input) Validate() error {
	// validate struct
	ok, err := govalidator.ValidateStruct(i)
	if !ok || err != nil {
		return xo.SF("Title and content are required fields")
	}

	return nil
}
