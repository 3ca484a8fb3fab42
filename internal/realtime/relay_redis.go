// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// RedisRelay fans envelopes out across processes.
//
// Publish writes the envelope to the group's Pub/Sub channel; Run subscribes
// to every group channel and hands received envelopes to the local registry.
// Each replica runs one relay, so a message reaches sockets on any replica.
type RedisRelay struct {
	// RetryDelay is the first wait after a failed subscription attempt.
	// It doubles per attempt up to [constants.RelayMaxRetryDelay].
	RetryDelay time.Duration

	client *redis.Client
	local  *Registry
	logger *slog.Logger

	subscribed chan struct{}
}

// NewRedisRelay creates a relay delivering into local.
func NewRedisRelay(client *redis.Client, local *Registry, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{
		client:     client,
		local:      local,
		logger:     logger,
		subscribed: make(chan struct{}),
		RetryDelay: constants.RelayRetryDelay,
	}
}

// Channel is the Pub/Sub channel carrying messages for group.
func Channel(group string) string {
	return constants.RedisChannelPrefix + group
}

// Publish implements [Broadcaster]. It returns the number of relay
// subscribers that received the envelope, not the number of sockets.
func (relay *RedisRelay) Publish(ctx context.Context, envelope Envelope) int {
	payload, err := json.Marshal(envelope)
	if err != nil {
		relay.logger.ErrorContext(ctx, "realtime_relay_encode_failed", slog.Any("error", err))
		return 0
	}

	receivers, err := relay.client.Publish(ctx, Channel(envelope.Group), payload).Result()
	if err != nil {
		relay.logger.ErrorContext(ctx, "realtime_relay_publish_failed",
			slog.String("group", envelope.Group),
			slog.Any("error", err),
		)
		return 0
	}
	return int(receivers)
}

// Subscribed is closed once Run has an active subscription.
func (relay *RedisRelay) Subscribed() <-chan struct{} {
	return relay.subscribed
}

// Run delivers relayed envelopes to the local registry until ctx is done.
//
// A failed subscription is retried with a doubling delay; Run only returns
// once ctx is done.
func (relay *RedisRelay) Run(ctx context.Context) error {
	pubsub, err := relay.subscribe(ctx)
	if err != nil {
		return err
	}
	defer pubsub.Close()

	close(relay.subscribed)
	relay.logger.Info("realtime_relay_subscribed", slog.String("pattern", constants.RedisChannelPrefix+"*"))

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-messages:
			if !ok {
				return nil
			}
			relay.dispatch(ctx, message)
		}
	}
}

// subscribe opens the pattern subscription, waiting for Redis to confirm it.
func (relay *RedisRelay) subscribe(ctx context.Context) (*redis.PubSub, error) {
	delay := relay.RetryDelay
	if delay <= 0 {
		delay = constants.RelayRetryDelay
	}

	for attempt := 1; ; attempt++ {
		pubsub := relay.client.PSubscribe(ctx, constants.RedisChannelPrefix+"*")
		_, err := pubsub.Receive(ctx)
		if err == nil {
			return pubsub, nil
		}
		_ = pubsub.Close()

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		relay.logger.WarnContext(ctx, "realtime_relay_subscribe_failed",
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", delay),
			slog.Any("error", fmt.Errorf("realtime: subscribe relay: %w", err)),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		delay = min(delay*2, constants.RelayMaxRetryDelay)
	}
}

// Ready reports whether the relay holds an active subscription.
func (relay *RedisRelay) Ready(ctx context.Context) error {
	select {
	case <-relay.subscribed:
		return nil
	default:
		return errors.New("realtime: relay not subscribed")
	}
}

func (relay *RedisRelay) dispatch(ctx context.Context, message *redis.Message) {
	var envelope Envelope
	if err := json.Unmarshal([]byte(message.Payload), &envelope); err != nil {
		relay.logger.WarnContext(ctx, "realtime_relay_decode_failed",
			slog.String("channel", message.Channel),
			slog.Any("error", err),
		)
		return
	}

	// The channel is authoritative for the target group.
	envelope.Group = strings.TrimPrefix(message.Channel, constants.RedisChannelPrefix)
	relay.local.Publish(ctx, envelope)
}
