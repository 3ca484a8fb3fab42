// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/inkwell/internal/gateway"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// Authorizer is the decision source consulted for every request.
type Authorizer interface {
	Authorize(ctx context.Context, rawPath, authorization string) gateway.Decision
}

// Authorize runs every request through the authorization gateway.
//
// # Flow
//  1. Read the Authorization header. Websocket handshakes may carry the
//     token in the access_token query parameter instead, since browsers
//     cannot set headers on an upgrade.
//  2. Ask the gateway for a [gateway.Decision].
//  3. Denied: write the envelope with the decision's status and stop.
//  4. Allowed: attach the identity (if any) to the context and continue.
func Authorize(gate Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			decision := gate.Authorize(ctx, request.URL.Path, authorizationOf(request))

			if !decision.Allow {
				appError := decision.Err()
				level := slog.LevelWarn
				if appError.HTTPStatus >= http.StatusInternalServerError {
					level = slog.LevelError
				}
				ctxutil.GetLogger(ctx).Log(ctx, level, "gateway_denied",
					slog.String("reason", decision.Reason.String()),
					slog.Any("cause", decision.Cause),
				)
				respond.Failure(writer, appError)
				return
			}

			if decision.Identity != nil {
				ctx = ctxutil.WithIdentity(ctx, decision.Identity)
				noteUser(ctx, decision.Identity.ID)
			}

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// authorizationOf returns the raw credential presented by the request.
func authorizationOf(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	if header != "" || !isWebsocketUpgrade(request) {
		return header
	}

	if token := request.URL.Query().Get(constants.QueryAccessToken); token != "" {
		return constants.BearerScheme + token
	}
	return ""
}

func isWebsocketUpgrade(request *http.Request) bool {
	return strings.EqualFold(request.Header.Get("Upgrade"), "websocket")
}
