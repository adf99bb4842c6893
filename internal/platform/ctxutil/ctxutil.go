// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ctxutil carries request-scoped values through [context.Context].

Three values travel with every catalog request:

  - the request id, set by middleware.RequestID and echoed in error logs;
  - the request logger, which services read to log book and image events;
  - the verified token claims, absent for anonymous readers of the catalog.
*/
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/bookcatalog/internal/platform/ctxkey"
	"github.com/taibuivan/bookcatalog/internal/platform/sec"
)

// # Request Tracing

// WithRequestID attaches the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID returns the request id, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger attaches the request logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

/*
GetLogger returns the request logger.

Background work such as image cleanup after a cancelled request may run on a
context without one; it then logs through [slog.Default].
*/
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity

// WithAuthUser attaches the claims of a verified access token.
func WithAuthUser(ctx context.Context, claims *sec.AuthClaims) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, claims)
}

// GetAuthUser returns the caller's claims, or nil for anonymous requests.
func GetAuthUser(ctx context.Context) *sec.AuthClaims {
	claims, _ := ctx.Value(ctxkey.KeyUser).(*sec.AuthClaims)
	return claims
}
