package model

import (
	"time"
)

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// CommentsCount is only filled by queries that aggregate comments.
	CommentsCount *int `json:"comments_count,omitempty"`
}

// PostWithComments is a post together with its full comment collection.
type PostWithComments struct {
	Post
	Comments []Comment `json:"-"`
}
