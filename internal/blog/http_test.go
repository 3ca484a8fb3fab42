// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/blog"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

func newRouter(t *testing.T) (http.Handler, *recordingPublisher) {
	t.Helper()

	publisher := &recordingPublisher{}
	service, _ := newService(publisher)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if id := request.Header.Get("X-Test-User"); id != "" {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), &sec.Identity{ID: id, FullName: strings.ToUpper(id)}))
			}
			next.ServeHTTP(writer, request)
		})
	})
	router.Mount("/posts", blog.NewHandler(service).Routes())
	return router, publisher
}

func call(router http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		request.Header.Set("X-Test-User", user)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_CommentFlow posts a comment and reads it back.
*/
func TestHandler_CommentFlow(t *testing.T) {
	router, publisher := newRouter(t)

	recorder := call(router, http.MethodPost, "/posts/1/comments", "y", `{"content":"hello there"}`)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		EC int          `json:"EC"`
		DT blog.Comment `json:"DT"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, 1, created.EC)
	assert.Equal(t, "hello there", created.DT.Content)
	assert.Equal(t, "y", created.DT.AuthorID)
	assert.Len(t, publisher.comments, 1)

	recorder = call(router, http.MethodGet, "/posts/1/comments/list", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var listed struct {
		DT struct {
			Items []blog.Comment `json:"items"`
			Meta  struct {
				Total int `json:"total"`
			} `json:"meta"`
		} `json:"DT"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	require.Len(t, listed.DT.Items, 1)
	assert.Equal(t, 1, listed.DT.Meta.Total)
}

/*
TestHandler_Statuses maps service outcomes onto HTTP statuses.
*/
func TestHandler_Statuses(t *testing.T) {
	router, _ := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		user   string
		body   string
		status int
	}{
		{"list posts", http.MethodGet, "/posts", "", "", http.StatusOK},
		{"post details", http.MethodGet, "/posts/1/details", "", "", http.StatusOK},
		{"unknown post", http.MethodGet, "/posts/99/details", "", "", http.StatusNotFound},
		{"non numeric id", http.MethodGet, "/posts/abc/details", "", "", http.StatusBadRequest},
		{"anonymous comment", http.MethodPost, "/posts/1/comments", "", `{"content":"x"}`, http.StatusUnauthorized},
		{"malformed body", http.MethodPost, "/posts/1/comments", "y", `{`, http.StatusBadRequest},
		{"empty comment", http.MethodPost, "/posts/1/comments", "y", `{"content":""}`, http.StatusBadRequest},
		{"like", http.MethodPost, "/posts/1/like", "y", "", http.StatusCreated},
		{"like again", http.MethodPost, "/posts/1/like", "y", "", http.StatusConflict},
		{"likes list", http.MethodGet, "/posts/1/likes/list", "", "", http.StatusOK},
		{"unlike", http.MethodDelete, "/posts/1/like", "y", "", http.StatusOK},
		{"unlike again", http.MethodDelete, "/posts/1/like", "y", "", http.StatusNotFound},
		{"anonymous like", http.MethodPost, "/posts/1/like", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := call(router, tt.method, tt.path, tt.user, tt.body)
			assert.Equal(t, tt.status, recorder.Code, recorder.Body.String())
		})
	}
}
