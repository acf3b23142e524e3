package models

import "time"

// Post is a blog post. AuthorID is set once at creation and never changes.
type Post struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Categories []string  `json:"categories"`
	AuthorID   string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PostWithAuthor is a post with its author expanded to public fields, as
// returned by the listing.
type PostWithAuthor struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Categories []string   `json:"categories"`
	Author     PublicUser `json:"author"`
	CreatedAt  time.Time  `json:"createdAt"`
}
