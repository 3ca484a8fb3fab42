// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package blog holds the reader interactions on posts: comments and likes.

Every interaction that concerns a post owner raises an event on the
notification publisher; this package never talks to sockets directly.
*/
package blog

import "time"

// # Domain Entities

// Post is the subject of comments and likes. Authoring lives elsewhere.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	OwnerID    string    `json:"user_id"`
	OwnerName  string    `json:"user_name"`
	OwnerEmail string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Comment is a reader's comment, optionally replying to another on the same post.
type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post_id"`
	ParentID   *int64    `json:"parent_id"`
	AuthorID   string    `json:"user_id"`
	AuthorName string    `json:"user_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Like records that a user liked a post. A user likes a post at most once.
type Like struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentInput is the caller-supplied part of a new comment.
type CommentInput struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_id"`
}
