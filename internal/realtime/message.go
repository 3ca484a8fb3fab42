// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package realtime delivers server events to live websocket connections.

Architecture:

  - Registry: named groups of connections with snapshot-then-send fan-out.
  - Session: one per physical connection; Connecting → Joined → Closed.
  - Handler: the websocket transport (coder/websocket) feeding a Session.
  - RedisRelay: cross-process fan-out over Redis Pub/Sub into the local Registry.

Producers only see the [Broadcaster] interface, so the same call reaches a
single process or every replica depending on the configured relay.
*/
package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// # Wire Types

// Server-to-client message types.
const (
	TypeComment      = "comment"
	TypeNotification = "notification"
)

// Client-to-server actions.
const (
	ActionNewComment      = "new_comment"
	ActionNewNotification = "new_notification"
)

// Message is a server-tagged frame sent to clients.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewMessage encodes data as the payload of a typed message.
func NewMessage(messageType string, data any) (Message, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return Message{}, fmt.Errorf("realtime: encode %s payload: %w", messageType, err)
	}
	return Message{Type: messageType, Data: encoded}, nil
}

// ClientMessage is the tagged-action frame a client sends.
type ClientMessage struct {
	Action           string          `json:"action"`
	CommentData      json.RawMessage `json:"comment_data,omitempty"`
	NotificationData json.RawMessage `json:"notification_data,omitempty"`
}

// Envelope addresses a message to a group.
//
// ExceptID names a connection that must not receive it (the sender).
type Envelope struct {
	Group    string  `json:"group"`
	Message  Message `json:"message"`
	ExceptID string  `json:"except_id,omitempty"`
}

// # Fan-out

// Broadcaster delivers an envelope to every member of its group and reports
// how many recipients accepted it. Delivery failures never surface as errors.
type Broadcaster interface {
	Publish(ctx context.Context, envelope Envelope) int
}

// # Group Names

// PostGroup is the group of everyone watching a post.
func PostGroup(postID string) string {
	return constants.GroupPrefixPost + postID
}

// UserGroup is the personal group of a user.
func UserGroup(userID string) string {
	return constants.GroupPrefixUser + userID
}
