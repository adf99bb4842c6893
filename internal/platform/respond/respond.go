// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Envelope
//
// Every response, success or failure, is written as
//
//	{ "statusCode": 200, "message": "...", "data": ... }
//
// Error responses additionally carry a machine-readable "code" and, for
// validation failures, per-field "details".
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/pkg/pagination"
)

// Envelope is the JSON body shared by all responses.
type Envelope struct {
	StatusCode int                 `json:"statusCode"`
	Message    string              `json:"message"`
	Data       any                 `json:"data"`
	Code       string              `json:"code,omitempty"`
	Details    []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Status writes data in the standard envelope with an explicit status code.
func Status(writer http.ResponseWriter, statusCode int, message string, data any) {
	JSON(writer, statusCode, Envelope{StatusCode: statusCode, Message: message, Data: data})
}

// OK writes a 200 OK envelope.
func OK(writer http.ResponseWriter, message string, data any) {
	Status(writer, http.StatusOK, message, data)
}

// Created writes a 201 Created envelope.
func Created(writer http.ResponseWriter, message string, data any) {
	Status(writer, http.StatusCreated, message, data)
}

// Paginated writes a 200 OK envelope whose data holds the items under key and
// the pagination block under "pagination".
func Paginated(writer http.ResponseWriter, message, key string, items any, meta pagination.Meta) {
	OK(writer, message, map[string]any{
		key:          items,
		"pagination": meta,
	})
}

// Error converts any Go error into a standardized JSON API error response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, Envelope{
		StatusCode: appError.HTTPStatus,
		Message:    appError.Message,
		Data:       nil,
		Code:       appError.Code,
		Details:    appError.Details,
	})
}
