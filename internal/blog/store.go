// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import "context"

// # Data Access

// PostRepository reads posts.
type PostRepository interface {
	// FindByID returns NOT_FOUND when the post does not exist.
	FindByID(ctx context.Context, id int64) (*Post, error)

	// List returns a page of posts, newest first, with the total count.
	List(ctx context.Context, limit, offset int) ([]*Post, int, error)
}

// CommentRepository persists comments.
type CommentRepository interface {
	// Create stores the comment and fills in its ID and CreatedAt.
	Create(ctx context.Context, comment *Comment) error

	// FindByID returns NOT_FOUND when the comment does not exist.
	FindByID(ctx context.Context, id int64) (*Comment, error)

	// ListByPost returns a page of a post's comments, oldest first.
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*Comment, int, error)
}

// LikeRepository persists likes.
type LikeRepository interface {
	// Create stores the like; CONFLICT when the user already likes the post.
	Create(ctx context.Context, like *Like) error

	// Delete removes the user's like; NOT_FOUND when there is none.
	Delete(ctx context.Context, postID int64, userID string) error

	// ListByPost returns a page of a post's likes, newest first.
	ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*Like, int, error)
}
