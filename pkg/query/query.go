// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"strconv"
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings. Empty entries are dropped.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// OptionalBool parses "true"/"false" case-insensitively. An absent value yields
// (nil, true); ok is false only when a value is present and is neither literal.
func OptionalBool(val string) (value *bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "":
		return nil, true
	case "true":
		v := true
		return &v, true
	case "false":
		v := false
		return &v, true
	default:
		return nil, false
	}
}

// OptionalFloat parses a decimal number. ok is false when the value is present
// but is not a number.
func OptionalFloat(val string) (value *float64, ok bool) {
	val = strings.TrimSpace(val)
	if val == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}
