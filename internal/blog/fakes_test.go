// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/inkwell/internal/blog"
	"github.com/taibuivan/inkwell/internal/notification"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// memoryStore backs all three blog repositories.
type memoryStore struct {
	mu       sync.Mutex
	posts    map[int64]*blog.Post
	comments []*blog.Comment
	likes    []*blog.Like
	nextID   int64
}

func newMemoryStore(posts ...*blog.Post) *memoryStore {
	store := &memoryStore{posts: map[int64]*blog.Post{}, nextID: 100}
	for _, post := range posts {
		store.posts[post.ID] = post
	}
	return store
}

type memoryPosts struct{ *memoryStore }
type memoryComments struct{ *memoryStore }
type memoryLikes struct{ *memoryStore }

func (store memoryPosts) FindByID(ctx context.Context, id int64) (*blog.Post, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	post, ok := store.posts[id]
	if !ok {
		return nil, apperr.NotFound("Post")
	}
	return post, nil
}

func (store memoryPosts) List(ctx context.Context, limit, offset int) ([]*blog.Post, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	posts := make([]*blog.Post, 0, len(store.posts))
	for _, post := range store.posts {
		posts = append(posts, post)
	}
	return page(posts, limit, offset), len(posts), nil
}

func (store memoryComments) Create(ctx context.Context, comment *blog.Comment) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	comment.ID = store.nextID
	comment.CreatedAt = time.Now().UTC()
	store.comments = append(store.comments, comment)
	return nil
}

func (store memoryComments) FindByID(ctx context.Context, id int64) (*blog.Comment, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, comment := range store.comments {
		if comment.ID == id {
			return comment, nil
		}
	}
	return nil, apperr.NotFound("Comment")
}

func (store memoryComments) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*blog.Comment, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var mine []*blog.Comment
	for _, comment := range store.comments {
		if comment.PostID == postID {
			mine = append(mine, comment)
		}
	}
	return page(mine, limit, offset), len(mine), nil
}

func (store memoryLikes) Create(ctx context.Context, like *blog.Like) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, existing := range store.likes {
		if existing.PostID == like.PostID && existing.UserID == like.UserID {
			return apperr.Conflict("Like already exists")
		}
	}
	store.nextID++
	like.ID = store.nextID
	like.CreatedAt = time.Now().UTC()
	store.likes = append(store.likes, like)
	return nil
}

func (store memoryLikes) Delete(ctx context.Context, postID int64, userID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	for i, existing := range store.likes {
		if existing.PostID == postID && existing.UserID == userID {
			store.likes = append(store.likes[:i], store.likes[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("Like")
}

func (store memoryLikes) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]*blog.Like, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var mine []*blog.Like
	for _, like := range store.likes {
		if like.PostID == postID {
			mine = append(mine, like)
		}
	}
	return page(mine, limit, offset), len(mine), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	return items[offset:min(offset+limit, len(items))]
}

// recordingPublisher captures raised events.
type recordingPublisher struct {
	mu       sync.Mutex
	comments []notification.CommentEvent
	likes    []notification.LikeEvent
	fail     bool
}

var errPublish = errors.New("publish failed")

func (publisher *recordingPublisher) CommentCreated(ctx context.Context, event notification.CommentEvent) (*notification.Notification, error) {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	publisher.comments = append(publisher.comments, event)
	if publisher.fail {
		return nil, errPublish
	}
	return &notification.Notification{RecipientID: event.Owner.ID}, nil
}

func (publisher *recordingPublisher) PostLiked(ctx context.Context, event notification.LikeEvent) (*notification.Notification, error) {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()

	publisher.likes = append(publisher.likes, event)
	if publisher.fail {
		return nil, errPublish
	}
	return &notification.Notification{RecipientID: event.Owner.ID}, nil
}

func newService(publisher *recordingPublisher) (*blog.Service, *memoryStore) {
	store := newMemoryStore(
		&blog.Post{ID: 1, Title: "Hello", OwnerID: "x", OwnerName: "Xavier"},
		&blog.Post{ID: 2, Title: "Second", OwnerID: "x", OwnerName: "Xavier"},
	)
	service := blog.NewService(memoryPosts{store}, memoryComments{store}, memoryLikes{store}, publisher, discard)
	return service, store
}
