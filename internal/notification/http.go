// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for notifications.
type Handler struct {
	service *Service
}

// NewHandler constructs a new notification [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the notification endpoints, mounted at /blog/notifications.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.List)
	router.Post("/{id}/mark-read", handler.MarkRead)
	return router
}

/*
GET /api/v1/blog/notifications.

Description: Returns the caller's notifications, newest first.

Request:
  - page: int
  - limit: int

Response:
  - 200: Page of Notification
  - 401: User not authenticated
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	notifications, meta, err := handler.service.List(request.Context(), identity.ID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Notifications retrieved", notifications, meta)
}

/*
POST /api/v1/blog/notifications/{id}/mark-read.

Response:
  - 200: Notification marked as read
  - 400: Malformed id
  - 404: Notification not found
*/
func (handler *Handler) MarkRead(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MarkRead(request.Context(), requestutil.Param(request, "id"), identity.ID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Notification marked as read", "")
}
