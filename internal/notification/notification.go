// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notification records owner notifications and pushes them to live clients.

Flow:

  - A blog action (comment, like) raises an event through [Publisher].
  - The publisher persists a [Notification] for the post owner, unless the
    owner performed the action.
  - Fan-out to the owner's personal group and the post group runs after the
    caller has its answer.

The HTTP handler lets the authenticated owner list and acknowledge notifications.
*/
package notification

import "time"

// # Domain Types

// Notification is a message addressed to one user.
type Notification struct {
	ID             string    `json:"id"`
	RecipientID    string    `json:"recipient_id"`
	RecipientName  string    `json:"recipient_name"`
	RecipientEmail string    `json:"-"`
	Message        string    `json:"message"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// Person identifies a user as known to the identity service.
type Person struct {
	ID    string
	Name  string
	Email string
}

// DisplayName is the name used in notification texts.
func (person Person) DisplayName() string {
	if person.Name != "" {
		return person.Name
	}
	return person.ID
}

// # Events

// CommentEvent is raised after a comment has been stored.
type CommentEvent struct {
	PostID    string
	PostTitle string
	Owner     Person
	Actor     Person

	// Comment is the stored comment as clients render it.
	Comment any
}

// LikeEvent is raised after a like has been stored.
type LikeEvent struct {
	PostID    string
	PostTitle string
	Owner     Person
	Actor     Person
}
