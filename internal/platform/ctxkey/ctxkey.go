// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed context keys shared by middleware and handlers.
//
// The key type is unexported, so no other package can construct a colliding key.
package ctxkey

type key int

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = iota

	// KeyIdentity carries the gateway-attached [sec.Identity]. Absent on public paths.
	KeyIdentity

	// KeyLogger carries the per-request [*log/slog.Logger].
	KeyLogger
)
