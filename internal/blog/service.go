// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/taibuivan/inkwell/internal/notification"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

const (
	FieldContent  = "content"
	FieldParentID = "parent_id"

	maxCommentLength = 5000
)

// EventPublisher receives the events raised by reader interactions.
type EventPublisher interface {
	CommentCreated(ctx context.Context, event notification.CommentEvent) (*notification.Notification, error)
	PostLiked(ctx context.Context, event notification.LikeEvent) (*notification.Notification, error)
}

// # Service Layer

// Service orchestrates comments and likes.
type Service struct {
	posts     PostRepository
	comments  CommentRepository
	likes     LikeRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewService constructs a new [Service] with its required repositories.
func NewService(posts PostRepository, comments CommentRepository, likes LikeRepository, publisher EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		posts:     posts,
		comments:  comments,
		likes:     likes,
		publisher: publisher,
		logger:    logger,
	}
}

// # Posts

// ListPosts returns one page of posts, newest first.
func (service *Service) ListPosts(ctx context.Context, params pagination.Params) ([]*Post, pagination.Meta, error) {
	posts, total, err := service.posts.List(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return posts, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// GetPost returns one post.
func (service *Service) GetPost(ctx context.Context, postID int64) (*Post, error) {
	return service.posts.FindByID(ctx, postID)
}

// # Comments

/*
CreateComment stores a comment by the caller and raises a CommentEvent.

Description: A reply's parent must exist on the same post. Failing to
notify the owner does not fail the request: the comment is already stored.

Returns:
  - *Comment: The stored comment
  - error: VALIDATION_ERROR, NOT_FOUND (post or parent) or storage failures
*/
func (service *Service) CreateComment(ctx context.Context, caller *sec.Identity, postID int64, input CommentInput) (*Comment, error) {
	content := strings.TrimSpace(input.Content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	validator.MaxLen(FieldContent, content, maxCommentLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	post, err := service.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := service.comments.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if err := validator.Custom(FieldParentID, parent.PostID != postID, "Must belong to the same post").Err(); err != nil {
			return nil, err
		}
	}

	comment := &Comment{
		PostID:     postID,
		ParentID:   input.ParentID,
		AuthorID:   caller.ID,
		AuthorName: displayName(caller),
		Content:    content,
	}
	if err := service.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("post_id", postID),
		slog.String("user_id", caller.ID),
	)

	if _, err := service.publisher.CommentCreated(ctx, notification.CommentEvent{
		PostID:    formatID(post.ID),
		PostTitle: post.Title,
		Owner:     ownerOf(post),
		Actor:     personOf(caller),
		Comment:   comment,
	}); err != nil {
		service.logger.WarnContext(ctx, "comment_event_failed", slog.Int64("comment_id", comment.ID), slog.Any("error", err))
	}

	return comment, nil
}

// ListComments returns one page of a post's comments, oldest first.
func (service *Service) ListComments(ctx context.Context, postID int64, params pagination.Params) ([]*Comment, pagination.Meta, error) {
	comments, total, err := service.comments.ListByPost(ctx, postID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return comments, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// # Likes

/*
LikePost records the caller's like and raises a LikeEvent.

Returns:
  - *Like: The stored like
  - error: NOT_FOUND for an unknown post, CONFLICT for a repeated like
*/
func (service *Service) LikePost(ctx context.Context, caller *sec.Identity, postID int64) (*Like, error) {
	post, err := service.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	like := &Like{PostID: postID, UserID: caller.ID, UserName: displayName(caller)}
	if err := service.likes.Create(ctx, like); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "post_liked",
		slog.Int64("post_id", postID),
		slog.String("user_id", caller.ID),
	)

	if _, err := service.publisher.PostLiked(ctx, notification.LikeEvent{
		PostID:    formatID(post.ID),
		PostTitle: post.Title,
		Owner:     ownerOf(post),
		Actor:     personOf(caller),
	}); err != nil {
		service.logger.WarnContext(ctx, "like_event_failed", slog.Int64("post_id", postID), slog.Any("error", err))
	}

	return like, nil
}

// UnlikePost removes the caller's like. No event is raised.
func (service *Service) UnlikePost(ctx context.Context, caller *sec.Identity, postID int64) error {
	if err := service.likes.Delete(ctx, postID, caller.ID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "post_unliked",
		slog.Int64("post_id", postID),
		slog.String("user_id", caller.ID),
	)
	return nil
}

// ListLikes returns one page of a post's likes, newest first.
func (service *Service) ListLikes(ctx context.Context, postID int64, params pagination.Params) ([]*Like, pagination.Meta, error) {
	likes, total, err := service.likes.ListByPost(ctx, postID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return likes, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// # Internal Helpers

func displayName(identity *sec.Identity) string {
	if identity.FullName != "" {
		return identity.FullName
	}
	if identity.Email != "" {
		return identity.Email
	}
	return identity.ID
}

func personOf(identity *sec.Identity) notification.Person {
	return notification.Person{ID: identity.ID, Name: displayName(identity), Email: identity.Email}
}

func ownerOf(post *Post) notification.Person {
	return notification.Person{ID: post.OwnerID, Name: post.OwnerName, Email: post.OwnerEmail}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
