// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/pkg/uuid"
)

// # Session State

// State is the lifecycle phase of a session.
type State int

const (
	StateConnecting State = iota
	StateJoined
	StateClosed
)

func (state State) String() string {
	switch state {
	case StateConnecting:
		return "connecting"
	case StateJoined:
		return "joined"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(state))
	}
}

var (
	// ErrSessionClosed is returned when sending to a closed session.
	ErrSessionClosed = errors.New("realtime: session closed")

	// ErrSlowConsumer means the outbound queue was full and the message was dropped.
	ErrSlowConsumer = errors.New("realtime: outbound queue full")

	// ErrNotConnecting is returned by Accept on a session that already left Connecting.
	ErrNotConnecting = errors.New("realtime: session is not connecting")
)

// # Session

// Session binds one physical connection to its groups.
//
// Outbound messages are queued on a bounded channel drained by the transport;
// the registry never waits on a client.
type Session struct {
	id          string
	groups      []string
	registry    *Registry
	broadcaster Broadcaster
	logger      *slog.Logger

	mu       sync.Mutex
	state    State
	outbound chan Message
}

// NewSession creates a session in the Connecting state.
//
// groups[0] is the primary group that client actions are relayed to.
// Local membership lives in registry; relayed actions go through broadcaster,
// which may be the registry itself or a cross-process relay.
func NewSession(registry *Registry, broadcaster Broadcaster, groups []string, buffer int, logger *slog.Logger) *Session {
	if buffer <= 0 {
		buffer = constants.DefaultSessionBuffer
	}

	id := uuid.New()
	return &Session{
		id:          id,
		groups:      groups,
		registry:    registry,
		broadcaster: broadcaster,
		logger:      logger.With(slog.String("session_id", id)),
		state:       StateConnecting,
		outbound:    make(chan Message, buffer),
	}
}

// ID implements [Conn].
func (session *Session) ID() string { return session.id }

// State returns the current lifecycle phase.
func (session *Session) State() State {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state
}

// Groups returns the groups this session joins on accept.
func (session *Session) Groups() []string {
	return append([]string(nil), session.groups...)
}

// Outbound is drained by the transport. It is closed when the session closes.
func (session *Session) Outbound() <-chan Message {
	return session.outbound
}

// Accept joins every group and moves the session to Joined.
func (session *Session) Accept() error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state != StateConnecting {
		return fmt.Errorf("%w: %s", ErrNotConnecting, session.state)
	}

	for _, group := range session.groups {
		session.registry.Join(group, session)
	}
	session.state = StateJoined

	session.logger.Debug("realtime_session_joined", slog.Any("groups", session.groups))
	return nil
}

// Send implements [Conn]. It never blocks.
func (session *Session) Send(ctx context.Context, message Message) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state == StateClosed {
		return ErrSessionClosed
	}

	select {
	case session.outbound <- message:
		return nil
	default:
		return ErrSlowConsumer
	}
}

// Receive interprets one client frame.
//
// new_comment and new_notification are relayed to the primary group as
// server-tagged messages, excluding this session. Unknown actions and
// undecodable frames are ignored.
func (session *Session) Receive(ctx context.Context, raw []byte) error {
	if state := session.State(); state != StateJoined {
		return fmt.Errorf("%w: receive in state %s", ErrSessionClosed, state)
	}

	var frame ClientMessage
	if err := json.Unmarshal(raw, &frame); err != nil {
		session.logger.DebugContext(ctx, "realtime_frame_ignored", slog.String("reason", "invalid_json"))
		return nil
	}

	var message Message
	switch frame.Action {
	case ActionNewComment:
		message = Message{Type: TypeComment, Data: frame.CommentData}
	case ActionNewNotification:
		message = Message{Type: TypeNotification, Data: frame.NotificationData}
	default:
		session.logger.DebugContext(ctx, "realtime_frame_ignored",
			slog.String("reason", "unknown_action"),
			slog.String("action", frame.Action),
		)
		return nil
	}

	if len(session.groups) == 0 {
		return nil
	}

	session.broadcaster.Publish(ctx, Envelope{
		Group:    session.groups[0],
		Message:  message,
		ExceptID: session.id,
	})
	return nil
}

// Close leaves every joined group and closes the outbound queue.
// It is idempotent; Closed is terminal.
func (session *Session) Close() {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.state == StateClosed {
		return
	}

	if session.state == StateJoined {
		for _, group := range session.groups {
			session.registry.Leave(group, session)
		}
	}

	session.state = StateClosed
	close(session.outbound)

	session.logger.Debug("realtime_session_closed")
}
