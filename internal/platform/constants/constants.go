// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Identity: SSO call budget and header names.
  - Realtime: Group naming and relay channel taxonomy.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "inkwell-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Identity

const (
	// SSOVerifyTimeout bounds a single call to the remote identity service.
	SSOVerifyTimeout = 5 * time.Second

	// SSOSuccessCode is the EC value the identity service returns for a valid token.
	SSOSuccessCode = 1

	// BearerScheme is the Authorization scheme prefix, including the separating space.
	BearerScheme = "Bearer "

	// QueryAccessToken is the query parameter accepted on websocket handshakes.
	QueryAccessToken = "access_token"
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderContentType   = "Content-Type"
)

// # JSON Envelope

const (
	// EnvelopeSuccess is the EC value of every successful response.
	EnvelopeSuccess = 1

	// EnvelopeFailure is the EC value of every rejected or failed response.
	EnvelopeFailure = -1

	FieldStatus  = "status"
	FieldChecks  = "checks"
	FieldApp     = "app"
	FieldVersion = "version"
)

// # Realtime

const (
	// GroupPrefixPost names the broadcast group of everyone watching a post.
	GroupPrefixPost = "post_"

	// GroupPrefixUser names the personal broadcast group of a user.
	GroupPrefixUser = "user_"

	// RedisChannelPrefix is the Pub/Sub channel namespace for relayed group messages.
	RedisChannelPrefix = "realtime:group:"

	// DefaultSessionBuffer is the outbound queue length of a realtime session.
	DefaultSessionBuffer = 32

	// WebsocketWriteTimeout bounds a single frame write to a client.
	WebsocketWriteTimeout = 5 * time.Second

	// DefaultPublishTimeout bounds an asynchronous fan-out dispatch.
	DefaultPublishTimeout = 10 * time.Second

	// RelayRetryDelay is the first wait after a failed relay subscription; it doubles per attempt.
	RelayRetryDelay = 500 * time.Millisecond

	// RelayMaxRetryDelay caps the wait between relay subscription attempts.
	RelayMaxRetryDelay = 30 * time.Second
)

// # Database Schemas

const (
	SchemaBlog = "blog"
)
