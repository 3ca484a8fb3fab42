// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// maxResponseBytes caps how much of an identity service reply is read.
const maxResponseBytes = 1 << 20

// Verifier confirms a bearer token with the authority that issued it.
//
// Implementations return nil only for a token the authority accepted. Failures
// wrap one of [ErrInvalidToken], [ErrServiceUnavailable] or [ErrMalformedResponse].
type Verifier interface {
	Verify(ctx context.Context, token string) (*VerifiedUser, error)
}

// VerifiedUser is the identity service's view of the token owner.
//
// The raw user object is kept for diagnostics; authorization decisions are
// made from the decoded token claims.
type VerifiedUser struct {
	Raw json.RawMessage
}

// ssoEnvelope is the reply shape of the identity service.
type ssoEnvelope struct {
	EC   *int            `json:"EC"`
	EM   string          `json:"EM"`
	User json.RawMessage `json:"user"`
}

// # SSO Verifier

// SSOVerifier validates tokens by POSTing them to the identity service.
//
// It makes a single attempt per call. Wrap it in [RetryVerifier] to retry
// transient failures.
type SSOVerifier struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewSSOVerifier constructs a verifier for the given endpoint.
//
// A zero timeout falls back to [constants.SSOVerifyTimeout]; a nil client to
// a fresh [http.Client].
func NewSSOVerifier(url string, timeout time.Duration, client *http.Client) *SSOVerifier {
	if timeout <= 0 {
		timeout = constants.SSOVerifyTimeout
	}
	if client == nil {
		client = &http.Client{}
	}

	return &SSOVerifier{url: url, timeout: timeout, client: client}
}

/*
Verify asks the identity service whether token is valid.

Description: The call is bounded by the verifier timeout and inherits ctx, so a
caller that goes away cancels the outbound request.

Parameters:
  - ctx: context.Context (usually the inbound request context)
  - token: string (raw bearer token)

Returns:
  - *VerifiedUser: The service's user record on success
  - error: Wrapped ErrInvalidToken, ErrServiceUnavailable or ErrMalformedResponse
*/
func (verifier *SSOVerifier) Verify(ctx context.Context, token string) (*VerifiedUser, error) {
	callCtx, cancel := context.WithTimeout(ctx, verifier.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(callCtx, http.MethodPost, verifier.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrServiceUnavailable, err)
	}
	request.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+token)
	request.Header.Set("Accept", "application/json")

	response, err := verifier.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", ErrServiceUnavailable, response.StatusCode)
	case response.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d", ErrInvalidToken, response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		// A body cut off mid-read is a transport failure, not a verdict.
		return nil, fmt.Errorf("%w: read body: %v", ErrServiceUnavailable, err)
	}

	var envelope ssoEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.EC == nil {
		return nil, fmt.Errorf("%w: undecodable body", ErrMalformedResponse)
	}

	if *envelope.EC != constants.SSOSuccessCode {
		return nil, fmt.Errorf("%w: EC=%d %s", ErrInvalidToken, *envelope.EC, envelope.EM)
	}

	return &VerifiedUser{Raw: envelope.User}, nil
}
