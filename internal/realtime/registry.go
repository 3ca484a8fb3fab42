// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Conn is a registry member. Send must not block on network I/O.
type Conn interface {
	ID() string
	Send(ctx context.Context, message Message) error
}

type members map[string]Conn

// Registry maps group names to their live connections.
//
// Membership changes are serialized by one mutex. Fan-out copies the member
// list under the lock and sends outside it, so a slow or failing member never
// holds the lock or blocks its peers.
type Registry struct {
	mu     sync.Mutex
	groups map[string]members
	logger *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		groups: make(map[string]members),
		logger: logger,
	}
}

// Join adds conn to group, creating the group if needed. Joining twice is a no-op.
func (registry *Registry) Join(group string, conn Conn) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	set, ok := registry.groups[group]
	if !ok {
		set = make(members)
		registry.groups[group] = set
	}
	set[conn.ID()] = conn
}

// Leave removes conn from group. Empty groups are deleted.
func (registry *Registry) Leave(group string, conn Conn) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	set, ok := registry.groups[group]
	if !ok {
		return
	}

	delete(set, conn.ID())
	if len(set) == 0 {
		delete(registry.groups, group)
	}
}

// Broadcast delivers message to every member of group.
func (registry *Registry) Broadcast(ctx context.Context, group string, message Message) int {
	return registry.Publish(ctx, Envelope{Group: group, Message: message})
}

// Publish delivers the envelope to the current members of its group, skipping
// ExceptID. It returns the number of members that accepted the message.
func (registry *Registry) Publish(ctx context.Context, envelope Envelope) int {
	recipients := registry.snapshot(envelope.Group, envelope.ExceptID)

	delivered := 0
	for _, conn := range recipients {
		if registry.deliver(ctx, envelope.Group, conn, envelope.Message) {
			delivered++
		}
	}
	return delivered
}

// Members lists the connection IDs in group, sorted.
func (registry *Registry) Members(group string) []string {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	ids := lo.Keys(registry.groups[group])
	sort.Strings(ids)
	return ids
}

// Groups returns the number of non-empty groups.
func (registry *Registry) Groups() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	return len(registry.groups)
}

func (registry *Registry) snapshot(group, exceptID string) []Conn {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	return lo.Filter(lo.Values(registry.groups[group]), func(conn Conn, _ int) bool {
		return conn.ID() != exceptID
	})
}

// deliver sends to one member, converting errors and panics into log entries.
func (registry *Registry) deliver(ctx context.Context, group string, conn Conn, message Message) (ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			registry.logger.ErrorContext(ctx, "realtime_send_panic",
				slog.String("group", group),
				slog.String("conn_id", conn.ID()),
				slog.String("error", fmt.Sprint(recovered)),
			)
			ok = false
		}
	}()

	if err := conn.Send(ctx, message); err != nil {
		registry.logger.WarnContext(ctx, "realtime_send_failed",
			slog.String("group", group),
			slog.String("conn_id", conn.ID()),
			slog.Any("error", err),
		)
		return false
	}
	return true
}
