// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import "context"

// # Data Access

// Repository persists notifications.
type Repository interface {

	/*
		Create stores a new notification.

		Parameters:
		  - ctx: context.Context
		  - notification: *Notification (ID already assigned)

		Returns:
		  - error: Storage failure
	*/
	Create(ctx context.Context, notification *Notification) error

	/*
		ListByRecipient returns a page of notifications, newest first.

		Returns:
		  - []*Notification: The page
		  - int: Total notifications for the recipient
		  - error: Storage failure
	*/
	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*Notification, int, error)

	/*
		MarkRead flags one of the recipient's notifications as read.

		Returns:
		  - error: NOT_FOUND if no such notification belongs to the recipient
	*/
	MarkRead(ctx context.Context, id, recipientID string) error
}
