// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/database/schema"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

// # PostgreSQL Repository

// notificationRepository implements [Repository] using pgx.
type notificationRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed notification store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &notificationRepository{pool: pool}
}

func (repository *notificationRepository) Create(ctx context.Context, notification *Notification) error {
	table := schema.BlogNotification
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		table.Table,
		table.ID, table.RecipientID, table.RecipientName, table.RecipientEmail,
		table.Message, table.IsRead, table.CreatedAt,
	)

	_, err := repository.pool.Exec(ctx, query,
		notification.ID,
		notification.RecipientID,
		notification.RecipientName,
		notification.RecipientEmail,
		notification.Message,
		notification.IsRead,
		notification.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to insert notification: %w", err), "Notification")
	}
	return nil
}

func (repository *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]*Notification, int, error) {
	table := schema.BlogNotification
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		table.ID, table.RecipientID, table.RecipientName, table.RecipientEmail,
		table.Message, table.IsRead, table.CreatedAt,
		table.Table,
		table.RecipientID,
		table.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, recipientID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to list notifications: %w", err), "Notification")
	}
	defer rows.Close()

	notifications := make([]*Notification, 0, limit)
	total := 0
	for rows.Next() {
		var notification Notification
		if err := rows.Scan(
			&notification.ID,
			&notification.RecipientID,
			&notification.RecipientName,
			&notification.RecipientEmail,
			&notification.Message,
			&notification.IsRead,
			&notification.CreatedAt,
			&total,
		); err != nil {
			return nil, 0, dberr.Wrap(fmt.Errorf("postgres: failed to scan notification: %w", err), "Notification")
		}
		notifications = append(notifications, &notification)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Notification")
	}

	return notifications, total, nil
}

func (repository *notificationRepository) MarkRead(ctx context.Context, id, recipientID string) error {
	table := schema.BlogNotification
	query := fmt.Sprintf(`UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s = $2`,
		table.Table, table.IsRead, table.ID, table.RecipientID,
	)

	tag, err := repository.pool.Exec(ctx, query, id, recipientID)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres: failed to mark notification read: %w", err), "Notification")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Notification")
	}
	return nil
}
