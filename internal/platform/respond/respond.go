// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (Success or Error) follows the platform envelope
// {"EC": <code>, "EM": <message>, "DT": <data>} that the frontend and the
// identity service already speak. EC is 1 on success and -1 on failure.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/ctxutil"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	EC int    `json:"EC"`
	EM string `json:"EM"`
	DT any    `json:"DT"`
}

// Page is the DT payload of paginated list responses.
type Page struct {
	Items any             `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data wrapped in the success envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusOK, Envelope{EC: constants.EnvelopeSuccess, EM: message, DT: data})
}

// Created writes a 201 Created response with data wrapped in the success envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	JSON(writer, http.StatusCreated, Envelope{EC: constants.EnvelopeSuccess, EM: message, DT: data})
}

// Paginated writes a 200 OK response with a page of items and its metadata.
func Paginated(writer http.ResponseWriter, message string, items any, metadata pagination.Meta) {
	OK(writer, message, Page{Items: items, Meta: metadata})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Failure writes the denial envelope for an already classified [apperr.AppError].
//
// DT is the empty string unless the error carries field details.
func Failure(writer http.ResponseWriter, appError *apperr.AppError) {
	var data any = ""
	if len(appError.Details) > 0 {
		data = appError.Details
	}

	JSON(writer, appError.HTTPStatus, Envelope{
		EC: constants.EnvelopeFailure,
		EM: appError.Message,
		DT: data,
	})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client for security.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	Failure(writer, appError)
}
