// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gateway_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/gateway"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// countingVerifier records calls and returns a fixed error.
type countingVerifier struct {
	calls atomic.Int32
	err   error
}

func (verifier *countingVerifier) Verify(ctx context.Context, token string) (*sec.VerifiedUser, error) {
	verifier.calls.Add(1)
	if verifier.err != nil {
		return nil, verifier.err
	}
	return &sec.VerifiedUser{}, nil
}

func tokenWith(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func newGateway(t *testing.T, verifier sec.Verifier) *gateway.Gateway {
	t.Helper()
	gate, err := gateway.New(gateway.Config{
		PublicPatterns: gateway.DefaultPublicPatterns(),
		APIPrefix:      "/api/v1",
	}, verifier, sec.NewClaimDecoder())
	require.NoError(t, err)
	return gate
}

/*
TestGateway_PublicNeverVerifies holds for every public path, with or without a credential.
*/
func TestGateway_PublicNeverVerifies(t *testing.T) {
	verifier := &countingVerifier{}
	gate := newGateway(t, verifier)

	paths := []string{"/health", "/api/v1/blog/posts/", "/api/v1/blog/posts/3/details", "/api/v1/ws/comments/9"}
	headers := []string{"", "Bearer garbage", "Basic abc"}

	for _, path := range paths {
		for _, header := range headers {
			decision := gate.Authorize(context.Background(), path, header)
			assert.True(t, decision.Allow, "%s %q", path, header)
			assert.Nil(t, decision.Identity)
		}
	}

	assert.Zero(t, verifier.calls.Load())
}

/*
TestGateway_MissingCredential rejects protected paths before any remote call.
*/
func TestGateway_MissingCredential(t *testing.T) {
	verifier := &countingVerifier{}
	gate := newGateway(t, verifier)

	for _, header := range []string{"", "Token abc", "Bearer "} {
		decision := gate.Authorize(context.Background(), "/api/v1/blog/notifications", header)
		assert.False(t, decision.Allow)
		assert.Equal(t, gateway.ReasonMissingCredential, decision.Reason)
		assert.Equal(t, http.StatusUnauthorized, decision.Status())
	}

	assert.Zero(t, verifier.calls.Load())
}

/*
TestGateway_VerificationFailures maps verifier classes onto reasons and statuses.
*/
func TestGateway_VerificationFailures(t *testing.T) {
	tests := []struct {
		err    error
		reason gateway.Reason
		status int
	}{
		{fmt.Errorf("%w: EC=0", sec.ErrInvalidToken), gateway.ReasonInvalidToken, 401},
		{fmt.Errorf("%w: timeout", sec.ErrServiceUnavailable), gateway.ReasonServiceUnavailable, 503},
		{fmt.Errorf("%w: junk", sec.ErrMalformedResponse), gateway.ReasonMalformedResponse, 401},
	}

	for _, tt := range tests {
		t.Run(tt.reason.String(), func(t *testing.T) {
			gate := newGateway(t, &countingVerifier{err: tt.err})

			decision := gate.Authorize(context.Background(), "/api/v1/blog/notifications", "Bearer tok")
			assert.False(t, decision.Allow)
			assert.Equal(t, tt.reason, decision.Reason)
			assert.Equal(t, tt.status, decision.Status())
			assert.ErrorIs(t, decision.Cause, tt.err)
		})
	}
}

/*
TestGateway_MalformedClaims rejects verified but undecodable tokens.
*/
func TestGateway_MalformedClaims(t *testing.T) {
	gate := newGateway(t, &countingVerifier{})

	decision := gate.Authorize(context.Background(), "/api/v1/blog/notifications", "Bearer opaque")
	assert.Equal(t, gateway.ReasonMalformedClaims, decision.Reason)
	assert.Equal(t, http.StatusUnauthorized, decision.Status())
}

/*
TestGateway_PermissionCheck allows exact permission matches only.
*/
func TestGateway_PermissionCheck(t *testing.T) {
	gate := newGateway(t, &countingVerifier{})
	token := tokenWith(t, jwt.MapClaims{
		"id":   "u-1",
		"role": map[string]any{"name": "reader", "permissions": []map[string]string{{"url": "/blog/notifications"}}},
	})

	// 1. Permitted path; identity attached
	decision := gate.Authorize(context.Background(), "/api/v1/blog/notifications/", "Bearer "+token)
	require.True(t, decision.Allow)
	assert.Equal(t, "u-1", decision.Identity.ID)

	// 2. Any other protected path is forbidden
	for _, path := range []string{"/api/v1/blog/posts/1/like", "/api/v1/blog/notifications/5/mark-read", "/api/v1/ws/notifications"} {
		decision = gate.Authorize(context.Background(), path, "Bearer "+token)
		assert.False(t, decision.Allow, path)
		assert.Equal(t, gateway.ReasonPermissionDenied, decision.Reason, path)
		assert.Equal(t, http.StatusForbidden, decision.Status(), path)
	}
}

/*
TestGateway_PlaceholderClaimsAreLiteral forbids concrete paths that only a
wildcard reading of "*" or "{x}" would admit.
*/
func TestGateway_PlaceholderClaimsAreLiteral(t *testing.T) {
	gate := newGateway(t, &countingVerifier{})
	token := tokenWith(t, jwt.MapClaims{
		"id":          "u-2",
		"permissions": []string{"/blog/posts/*/like", "/blog/{x}/notifications"},
	})

	for _, path := range []string{"/api/v1/blog/posts/5/like", "/api/v1/blog/anything/notifications"} {
		decision := gate.Authorize(context.Background(), path, "Bearer "+token)
		assert.False(t, decision.Allow, path)
		assert.Equal(t, gateway.ReasonPermissionDenied, decision.Reason, path)
		assert.Equal(t, http.StatusForbidden, decision.Status(), path)
	}

	// The literal entry itself is still granted
	decision := gate.Authorize(context.Background(), "/api/v1/blog/posts/*/like", "Bearer "+token)
	assert.True(t, decision.Allow)
}

/*
TestGateway_SSOTimeout is the end-to-end timeout scenario: a hung identity
service degrades to 503 with an "SSO service error" message.
*/
func TestGateway_SSOTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-release:
		case <-request.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	gate := newGateway(t, sec.NewSSOVerifier(server.URL, 50*time.Millisecond, nil))

	decision := gate.Authorize(context.Background(), "/api/v1/blog/notifications", "Bearer tok")
	require.False(t, decision.Allow)
	assert.Equal(t, gateway.ReasonServiceUnavailable, decision.Reason)

	appError := decision.Err()
	assert.Equal(t, http.StatusServiceUnavailable, appError.HTTPStatus)
	assert.Contains(t, appError.Message, "SSO service error: ")
}

/*
TestGateway_Concurrent runs many decisions in parallel on one gateway.
*/
func TestGateway_Concurrent(t *testing.T) {
	verifier := &countingVerifier{}
	gate := newGateway(t, verifier)
	token := tokenWith(t, jwt.MapClaims{"id": "u", "permissions": []string{"/blog/notifications"}})

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := "/api/v1/blog/notifications"
			if i%2 == 0 {
				path = "/api/v1/blog/posts"
			}
			assert.True(t, gate.Authorize(context.Background(), path, "Bearer "+token).Allow)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(32), verifier.calls.Load())
}
