// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/notification"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

const (
	firstID  = "0194f1c2-0000-7000-8000-000000000001"
	secondID = "0194f1c2-0000-7000-8000-000000000002"
	otherID  = "0194f1c2-0000-7000-8000-000000000003"
)

func seededRouter(t *testing.T) (http.Handler, *memoryRepository) {
	t.Helper()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repository := &memoryRepository{rows: []*notification.Notification{
		{ID: firstID, RecipientID: "x", Message: "older", CreatedAt: base},
		{ID: secondID, RecipientID: "x", Message: "newer", CreatedAt: base.Add(time.Hour)},
		{ID: otherID, RecipientID: "y", Message: "not yours", CreatedAt: base},
	}}

	handler := notification.NewHandler(notification.NewService(repository, discard))

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if id := request.Header.Get("X-Test-User"); id != "" {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), &sec.Identity{ID: id}))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/notifications", handler.Routes())
	return router, repository
}

func serve(router http.Handler, method, path, user string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, nil)
	if user != "" {
		request.Header.Set("X-Test-User", user)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_List returns only the caller's notifications, newest first.
*/
func TestHandler_List(t *testing.T) {
	router, _ := seededRouter(t)

	recorder := serve(router, http.MethodGet, "/notifications?limit=1", "x")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		EC int `json:"EC"`
		DT struct {
			Items []notification.Notification `json:"items"`
			Meta  struct {
				Total      int `json:"total"`
				TotalPages int `json:"total_pages"`
			} `json:"meta"`
		} `json:"DT"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	assert.Equal(t, 1, body.EC)
	require.Len(t, body.DT.Items, 1)
	assert.Equal(t, "newer", body.DT.Items[0].Message)
	assert.Equal(t, 2, body.DT.Meta.Total)
	assert.Equal(t, 2, body.DT.Meta.TotalPages)
}

/*
TestHandler_MarkRead acknowledges own notifications only.
*/
func TestHandler_MarkRead(t *testing.T) {
	router, repository := seededRouter(t)

	tests := []struct {
		name   string
		id     string
		user   string
		status int
	}{
		{"own", firstID, "x", http.StatusOK},
		{"foreign", otherID, "x", http.StatusNotFound},
		{"malformed", "17", "x", http.StatusBadRequest},
		{"anonymous", firstID, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := serve(router, http.MethodPost, "/notifications/"+tt.id+"/mark-read", tt.user)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}

	read := map[string]bool{}
	for _, row := range repository.all() {
		read[row.ID] = row.IsRead
	}
	assert.Equal(t, map[string]bool{firstID: true, secondID: false, otherID: false}, read)
}
