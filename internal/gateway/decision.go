// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway

import (
	"fmt"
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// # Failure Reasons

// Reason classifies why a request was denied.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissingCredential
	ReasonInvalidToken
	ReasonServiceUnavailable
	ReasonMalformedResponse
	ReasonMalformedClaims
	ReasonPermissionDenied
)

// String returns the machine-readable code used in logs and [apperr.AppError].
func (reason Reason) String() string {
	switch reason {
	case ReasonNone:
		return "NONE"
	case ReasonMissingCredential:
		return "MISSING_CREDENTIAL"
	case ReasonInvalidToken:
		return "INVALID_TOKEN"
	case ReasonServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	case ReasonMalformedResponse:
		return "MALFORMED_RESPONSE"
	case ReasonMalformedClaims:
		return "MALFORMED_CLAIMS"
	case ReasonPermissionDenied:
		return "PERMISSION_DENIED"
	default:
		return fmt.Sprintf("REASON_%d", int(reason))
	}
}

// # Decision

// Decision is the gateway's verdict for one request. It is immutable once built.
type Decision struct {
	// Allow reports whether the request may reach the domain handler.
	Allow bool

	// Identity is the decoded caller; nil for public paths and denials
	// that happen before decoding.
	Identity *sec.Identity

	// Reason is ReasonNone when Allow is true.
	Reason Reason

	// Cause is the underlying failure, for server-side logging only.
	Cause error
}

// allowed builds a pass-through decision.
func allowed(identity *sec.Identity) Decision {
	return Decision{Allow: true, Identity: identity}
}

// denied builds a rejection.
func denied(reason Reason, identity *sec.Identity, cause error) Decision {
	return Decision{Reason: reason, Identity: identity, Cause: cause}
}

// Status returns the HTTP status for the decision.
func (decision Decision) Status() int {
	if decision.Allow {
		return http.StatusOK
	}
	return decision.Err().HTTPStatus
}

// Err renders a denial as the client-facing [apperr.AppError]. It returns nil
// for an allowed request.
func (decision Decision) Err() *apperr.AppError {
	if decision.Allow {
		return nil
	}

	var appError *apperr.AppError
	switch decision.Reason {
	case ReasonMissingCredential:
		appError = apperr.UnauthorizedCode(decision.Reason.String(), "Bearer token is required")
	case ReasonInvalidToken:
		appError = apperr.UnauthorizedCode(decision.Reason.String(), "User not authenticated")
	case ReasonServiceUnavailable:
		appError = apperr.ServiceUnavailable(fmt.Sprintf("SSO service error: %v", decision.Cause))
	case ReasonMalformedResponse:
		appError = apperr.UnauthorizedCode(decision.Reason.String(), "Invalid response from SSO service")
	case ReasonMalformedClaims:
		appError = apperr.UnauthorizedCode(decision.Reason.String(), "Invalid token claims")
	case ReasonPermissionDenied:
		appError = apperr.Forbidden("Permission denied")
	default:
		appError = apperr.Forbidden("Access denied")
	}

	return appError.WithCause(decision.Cause)
}
