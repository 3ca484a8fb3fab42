// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package gateway is the single authorization gate every inbound call passes through.

It composes the credential primitives of package sec with the path policy:

 1. Normalize the request path.
 2. Public path? Allow with no identity.
 3. Extract the bearer credential (missing → 401).
 4. Verify it with the remote identity service (401 / 503).
 5. Decode the claims into an Identity (401).
 6. Check the permission for the path (403).

The gateway is transport-independent: the HTTP middleware and the websocket
handshake both call [Gateway.Authorize]. It holds no mutable state.
*/
package gateway

import (
	"context"
	"errors"

	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// Decoder turns a verified token into an identity.
type Decoder interface {
	Decode(token string) (*sec.Identity, error)
}

// Gateway orchestrates extraction, verification, decoding and policy.
type Gateway struct {
	policy   *Policy
	verifier sec.Verifier
	decoder  Decoder
}

// New builds a gateway from explicit configuration and collaborators.
func New(cfg Config, verifier sec.Verifier, decoder Decoder) (*Gateway, error) {
	policy, err := NewPolicy(cfg)
	if err != nil {
		return nil, err
	}

	return &Gateway{policy: policy, verifier: verifier, decoder: decoder}, nil
}

/*
Authorize produces the decision for one request.

Parameters:
  - ctx: context.Context (cancelling it abandons the outbound verification call)
  - rawPath: string (request path as received)
  - authorization: string (raw Authorization header value, may be empty)

Returns:
  - Decision: Allow with optional Identity, or a classified denial
*/
func (gateway *Gateway) Authorize(ctx context.Context, rawPath, authorization string) Decision {
	path := NormalizePath(rawPath)

	// Public paths are unconditionally open, whatever credential was sent.
	if gateway.policy.IsPublic(path) {
		return allowed(nil)
	}

	token, err := sec.ExtractBearer(authorization)
	if err != nil {
		return denied(ReasonMissingCredential, nil, err)
	}

	if _, err := gateway.verifier.Verify(ctx, token); err != nil {
		return denied(classifyVerification(err), nil, err)
	}

	identity, err := gateway.decoder.Decode(token)
	if err != nil {
		return denied(ReasonMalformedClaims, nil, err)
	}

	return gateway.policy.Evaluate(path, identity)
}

// classifyVerification maps verifier errors onto gateway reasons.
// Unknown errors are treated as a rejected token.
func classifyVerification(err error) Reason {
	switch {
	case errors.Is(err, sec.ErrServiceUnavailable):
		return ReasonServiceUnavailable
	case errors.Is(err, sec.ErrMalformedResponse):
		return ReasonMalformedResponse
	default:
		return ReasonInvalidToken
	}
}
