// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer provides helpers for the optional fields of partial updates.

A nil pointer means "not supplied"; a non-nil pointer carries the new value,
even when that value is the zero value.
*/
package pointer

import "strings"

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val dereferences p, returning the zero value of T if p is nil.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Fallback dereferences p, returning fallback if p is nil.
func Fallback[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}

// Trim returns a pointer to the whitespace-trimmed value of p, or nil if p is nil.
func Trim(p *string) *string {
	if p == nil {
		return nil
	}
	return To(strings.TrimSpace(*p))
}
