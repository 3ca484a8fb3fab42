// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into client-safe application errors.
*/
func TestWrap(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Post"))

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound, "Post not found"},
		{"unique", &pgconn.PgError{Code: "23505"}, http.StatusConflict, "Post already exists"},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, http.StatusNotFound, "Post not found"},
		{"unknown", errors.New("conn reset"), http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appError := apperr.As(dberr.Wrap(tt.err, "Post"))
			require.NotNil(t, appError)
			assert.Equal(t, tt.status, appError.HTTPStatus)
			assert.Equal(t, tt.message, appError.Message)
			assert.ErrorIs(t, appError, tt.err)
		})
	}
}

/*
TestWrap_ForeignKeyOnInsert names the inserted resource when a referenced row is missing.
*/
func TestWrap_ForeignKeyOnInsert(t *testing.T) {
	cause := &pgconn.PgError{Code: "23503", ConstraintName: "blog_comments_parent_id_fkey"}
	err := dberr.Wrap(fmt.Errorf("postgres: failed to insert comment: %w", cause), "Comment")

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusNotFound, appError.HTTPStatus)
	assert.Equal(t, "Comment not found", appError.Message)
	assert.ErrorIs(t, err, cause)
}
