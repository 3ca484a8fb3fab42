// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *apperr.AppError
		status  int
		code    string
		message string
	}{
		{"not found", apperr.NotFound("Post"), http.StatusNotFound, "NOT_FOUND", "Post not found"},
		{"forbidden", apperr.Forbidden("Permission denied"), http.StatusForbidden, "FORBIDDEN", "Permission denied"},
		{"conflict", apperr.Conflict("Like already exists"), http.StatusConflict, "CONFLICT", "Like already exists"},
		{"rate limited", apperr.RateLimited(1), http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Try again in 1s."},
		{"internal", apperr.Internal(errors.New("boom")), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
		{"unavailable", apperr.ServiceUnavailable("SSO service error: down"), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "SSO service error: down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestWithCause_DoesNotMutate(t *testing.T) {
	base := apperr.NotFound("Comment")
	cause := errors.New("no rows")

	wrapped := base.WithCause(cause)

	assert.Nil(t, base.Cause)
	assert.ErrorIs(t, wrapped, cause)
}

func TestAs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("service: %w", apperr.Conflict("duplicate"))

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)

	assert.Nil(t, apperr.As(errors.New("plain")))
}
