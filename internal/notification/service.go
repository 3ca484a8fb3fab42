// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"log/slog"

	"github.com/taibuivan/inkwell/internal/platform/validate"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

const FieldNotificationID = "id"

// # Service Layer

// Service serves a recipient's own notifications.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
List returns one page of the recipient's notifications, newest first.

Returns:
  - []*Notification: The page
  - pagination.Meta: Page metadata
  - error: Storage failures
*/
func (service *Service) List(ctx context.Context, recipientID string, params pagination.Params) ([]*Notification, pagination.Meta, error) {
	notifications, total, err := service.repository.ListByRecipient(ctx, recipientID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return notifications, pagination.NewMeta(params.Page, params.Limit, total), nil
}

/*
MarkRead acknowledges one notification on behalf of its recipient.

Returns:
  - error: VALIDATION_ERROR for a malformed id, NOT_FOUND when the
    notification does not exist or belongs to someone else
*/
func (service *Service) MarkRead(ctx context.Context, id, recipientID string) error {
	if err := new(validate.Validator).UUID(FieldNotificationID, id).Err(); err != nil {
		return err
	}

	if err := service.repository.MarkRead(ctx, id, recipientID); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "notification_marked_read",
		slog.String("notification_id", id),
		slog.String("recipient_id", recipientID),
	)
	return nil
}
