// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// # Mapping
//
//   - pgx.ErrNoRows                         -> NOT_FOUND
//   - 23505 unique_violation                -> CONFLICT
//   - 23503 foreign_key_violation           -> VALIDATION_ERROR (unknown reference)
//   - 22P02 invalid_text_representation     -> VALIDATION_ERROR (malformed id)
//   - 23514 check_violation, 23502 not_null -> VALIDATION_ERROR
//   - 22003 numeric_value_out_of_range      -> VALIDATION_ERROR
//   - anything else                         -> INTERNAL_ERROR
//
// Callers that need a different reading of a code (a foreign key violation on
// DELETE means "still referenced") test with [IsForeignKeyViolation] first.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if apperr.As(err) != nil {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	cause := fmt.Errorf("postgres: %s: %w", action, err)

	// 2. Constraint and input classes
	switch code(err) {
	case pgerrcode.UniqueViolation:
		return apperr.Conflict("A record with the same value already exists").WithCause(cause)
	case pgerrcode.ForeignKeyViolation:
		return apperr.ValidationError("Referenced record does not exist").WithCause(cause)
	case pgerrcode.InvalidTextRepresentation:
		return apperr.ValidationError("Malformed identifier").WithCause(cause)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return apperr.ValidationError("Value violates a data constraint").WithCause(cause)
	case pgerrcode.NumericValueOutOfRange:
		return apperr.ValidationError("Value is out of range").WithCause(cause)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(cause)
}

// IsForeignKeyViolation reports whether err carries SQLSTATE 23503.
func IsForeignKeyViolation(err error) bool {
	return code(err) == pgerrcode.ForeignKeyViolation
}

// code extracts the SQLSTATE from a [*pgconn.PgError] in err's chain.
func code(err error) string {
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		return pgError.Code
	}
	return ""
}
