// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/taibuivan/inkwell/internal/notification"
	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/realtime"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// memoryRepository is an in-process [notification.Repository].
type memoryRepository struct {
	mu      sync.Mutex
	rows    []*notification.Notification
	failErr error
}

func (repository *memoryRepository) Create(ctx context.Context, n *notification.Notification) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.failErr != nil {
		return repository.failErr
	}
	copied := *n
	repository.rows = append(repository.rows, &copied)
	return nil
}

func (repository *memoryRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*notification.Notification, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var mine []*notification.Notification
	for _, row := range repository.rows {
		if row.RecipientID == recipientID {
			mine = append(mine, row)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool { return mine[i].CreatedAt.After(mine[j].CreatedAt) })

	total := len(mine)
	if offset >= total {
		return []*notification.Notification{}, total, nil
	}
	end := min(offset+limit, total)
	return mine[offset:end], total, nil
}

func (repository *memoryRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, row := range repository.rows {
		if row.ID == id && row.RecipientID == recipientID {
			row.IsRead = true
			return nil
		}
	}
	return apperr.NotFound("Notification")
}

func (repository *memoryRepository) all() []*notification.Notification {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return append([]*notification.Notification(nil), repository.rows...)
}

// recordingBroadcaster captures envelopes and the context they were sent with.
type recordingBroadcaster struct {
	mu        sync.Mutex
	envelopes []realtime.Envelope
	ctxErrs   []error
	gate      chan struct{}
}

func (broadcaster *recordingBroadcaster) Publish(ctx context.Context, envelope realtime.Envelope) int {
	if broadcaster.gate != nil {
		<-broadcaster.gate
	}

	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	broadcaster.envelopes = append(broadcaster.envelopes, envelope)
	broadcaster.ctxErrs = append(broadcaster.ctxErrs, ctx.Err())
	return 1
}

func (broadcaster *recordingBroadcaster) sent() []realtime.Envelope {
	broadcaster.mu.Lock()
	defer broadcaster.mu.Unlock()
	return append([]realtime.Envelope(nil), broadcaster.envelopes...)
}
