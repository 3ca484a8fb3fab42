// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package realtime

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/inkwell/internal/platform/constants"
	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
)

// HandlerConfig tunes the websocket transport.
type HandlerConfig struct {
	// OriginPatterns are host patterns accepted in addition to same-origin.
	OriginPatterns []string

	// Buffer is the outbound queue length of each session.
	Buffer int
}

// Handler upgrades HTTP requests into realtime sessions.
type Handler struct {
	registry    *Registry
	broadcaster Broadcaster
	config      HandlerConfig
	logger      *slog.Logger
}

// NewHandler creates the websocket transport.
func NewHandler(registry *Registry, broadcaster Broadcaster, config HandlerConfig, logger *slog.Logger) *Handler {
	return &Handler{
		registry:    registry,
		broadcaster: broadcaster,
		config:      config,
		logger:      logger,
	}
}

// Routes returns the websocket endpoints. Authorization has already run.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/comments/{postID}", handler.comments)
	router.Get("/notifications", handler.notifications)
	return router
}

// comments handles GET /ws/comments/{postID}.
func (handler *Handler) comments(writer http.ResponseWriter, req *http.Request) {
	postID, err := requestutil.NumericParam(req, "postID")
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	handler.serve(writer, req, []string{PostGroup(postID)})
}

// notifications handles GET /ws/notifications.
func (handler *Handler) notifications(writer http.ResponseWriter, req *http.Request) {
	identity, err := requestutil.RequiredIdentity(req)
	if err != nil {
		respond.Error(writer, req, err)
		return
	}

	handler.serve(writer, req, []string{UserGroup(identity.ID)})
}

// serve runs one connection until either side hangs up.
func (handler *Handler) serve(writer http.ResponseWriter, req *http.Request, groups []string) {
	// The server's per-request deadlines would otherwise survive the hijack
	controller := http.NewResponseController(writer)
	_ = controller.SetReadDeadline(time.Time{})
	_ = controller.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: handler.config.OriginPatterns,
	})
	if err != nil {
		handler.logger.WarnContext(req.Context(), "websocket_accept_failed", slog.Any("error", err))
		return
	}

	session := NewSession(handler.registry, handler.broadcaster, groups, handler.config.Buffer, handler.logger)
	if err := session.Accept(); err != nil {
		_ = conn.Close(websocket.StatusInternalError, "join failed")
		return
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	// 1. Read pump: client frames feed the session until the peer goes away
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				readErr <- err
				return
			}
			_ = session.Receive(ctx, data)
		}
	}()

	// 2. Write pump: drain the outbound queue with a bounded write per frame
	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case err := <-readErr:
			if status := websocket.CloseStatus(err); status == -1 && !errors.Is(err, context.Canceled) {
				handler.logger.DebugContext(ctx, "websocket_read_ended", slog.Any("error", err))
			}
			_ = conn.Close(websocket.StatusNormalClosure, "closed")
			return
		case message, ok := <-session.Outbound():
			if !ok {
				_ = conn.Close(websocket.StatusNormalClosure, "closed")
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, constants.WebsocketWriteTimeout)
			err := wsjson.Write(writeCtx, conn, message)
			cancelWrite()
			if err != nil {
				_ = conn.Close(websocket.StatusNormalClosure, "write_failed")
				return
			}
		}
	}
}
