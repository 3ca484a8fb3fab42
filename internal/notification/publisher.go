// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/realtime"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// ErrPublisherClosed is returned for events raised after shutdown began.
var ErrPublisherClosed = errors.New("notification: publisher closed")

const (
	commentMessage = "%s commented on your post: '%s'"
	likeMessage    = "%s liked your post: '%s'"
)

// # Publisher

// Publisher turns blog events into stored notifications and realtime messages.
//
// Persistence happens on the caller's goroutine. Fan-out is dispatched on a
// tracked goroutine detached from the caller's cancellation, bounded by the
// publish timeout, and drained by [Publisher.Close].
type Publisher struct {
	repository  Repository
	broadcaster realtime.Broadcaster
	timeout     time.Duration
	logger      *slog.Logger
	now         func() time.Time

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewPublisher creates a publisher. A non-positive timeout uses the default.
func NewPublisher(repository Repository, broadcaster realtime.Broadcaster, timeout time.Duration, logger *slog.Logger) *Publisher {
	if timeout <= 0 {
		timeout = constants.DefaultPublishTimeout
	}
	return &Publisher{
		repository:  repository,
		broadcaster: broadcaster,
		timeout:     timeout,
		logger:      logger,
		now:         time.Now,
	}
}

/*
CommentCreated notifies the post owner and pushes the comment to the post group.

The comment is pushed to post_<id> even when the owner commented on their own
post; only the notification is skipped.

Returns:
  - *Notification: the stored notification, nil for a self-comment
  - error: persistence failure (the post group is still updated)
*/
func (publisher *Publisher) CommentCreated(ctx context.Context, event CommentEvent) (*Notification, error) {
	notification, err := publisher.record(ctx, event.Owner, event.Actor, fmt.Sprintf(commentMessage, event.Actor.DisplayName(), event.PostTitle))

	envelopes := publisher.notificationEnvelopes(ctx, notification)
	if message, encodeErr := realtime.NewMessage(realtime.TypeComment, event.Comment); encodeErr != nil {
		publisher.logger.ErrorContext(ctx, "comment_broadcast_encode_failed", slog.Any("error", encodeErr))
	} else {
		envelopes = append(envelopes, realtime.Envelope{Group: realtime.PostGroup(event.PostID), Message: message})
	}

	if dispatchErr := publisher.dispatch(ctx, envelopes); dispatchErr != nil && err == nil {
		err = dispatchErr
	}
	return notification, err
}

/*
PostLiked notifies the post owner of a new like.

Returns:
  - *Notification: the stored notification, nil when owners like their own post
  - error: persistence failure
*/
func (publisher *Publisher) PostLiked(ctx context.Context, event LikeEvent) (*Notification, error) {
	notification, err := publisher.record(ctx, event.Owner, event.Actor, fmt.Sprintf(likeMessage, event.Actor.DisplayName(), event.PostTitle))
	if notification == nil {
		return nil, err
	}

	return notification, publisher.dispatch(ctx, publisher.notificationEnvelopes(ctx, notification))
}

// Wait blocks until every dispatched fan-out has finished.
func (publisher *Publisher) Wait() {
	publisher.inflight.Wait()
}

// Close stops accepting dispatches and waits for in-flight ones, or until ctx ends.
func (publisher *Publisher) Close(ctx context.Context) error {
	publisher.mu.Lock()
	publisher.closed = true
	publisher.mu.Unlock()

	done := make(chan struct{})
	go func() {
		publisher.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notification: drain publisher: %w", ctx.Err())
	}
}

// record persists a notification unless actor and owner are the same user.
func (publisher *Publisher) record(ctx context.Context, owner, actor Person, message string) (*Notification, error) {
	if owner.ID == "" || owner.ID == actor.ID {
		return nil, nil
	}

	notification := &Notification{
		ID:             uuid.New(),
		RecipientID:    owner.ID,
		RecipientName:  owner.Name,
		RecipientEmail: owner.Email,
		Message:        message,
		CreatedAt:      publisher.now().UTC(),
	}

	if err := publisher.repository.Create(ctx, notification); err != nil {
		publisher.logger.ErrorContext(ctx, "notification_persist_failed",
			slog.String("recipient_id", owner.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	publisher.logger.InfoContext(ctx, "notification_created",
		slog.String("notification_id", notification.ID),
		slog.String("recipient_id", owner.ID),
		slog.String("actor_id", actor.ID),
	)
	return notification, nil
}

func (publisher *Publisher) notificationEnvelopes(ctx context.Context, notification *Notification) []realtime.Envelope {
	if notification == nil {
		return nil
	}

	message, err := realtime.NewMessage(realtime.TypeNotification, notification)
	if err != nil {
		publisher.logger.ErrorContext(ctx, "notification_broadcast_encode_failed", slog.Any("error", err))
		return nil
	}
	return []realtime.Envelope{{Group: realtime.UserGroup(notification.RecipientID), Message: message}}
}

// dispatch fans envelopes out without blocking the caller.
func (publisher *Publisher) dispatch(ctx context.Context, envelopes []realtime.Envelope) error {
	if len(envelopes) == 0 {
		return nil
	}

	publisher.mu.Lock()
	if publisher.closed {
		publisher.mu.Unlock()
		publisher.logger.WarnContext(ctx, "notification_dispatch_rejected", slog.Int("envelopes", len(envelopes)))
		return ErrPublisherClosed
	}
	publisher.inflight.Add(1)
	publisher.mu.Unlock()

	logger := publisher.logger
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publisher.timeout)

	go func() {
		defer publisher.inflight.Done()
		defer cancel()

		for _, envelope := range envelopes {
			delivered := publisher.broadcaster.Publish(dispatchCtx, envelope)
			logger.DebugContext(dispatchCtx, "realtime_dispatched",
				slog.String("group", envelope.Group),
				slog.String("type", envelope.Message.Type),
				slog.Int("delivered", delivered),
			)
		}
	}()

	return nil
}
