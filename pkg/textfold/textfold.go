// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textfold produces accent-insensitive search keys from Unicode text.
//
// # Usage
//
// Book titles are stored together with a folded projection ("Truyện Kiều" ->
// "truyen kieu") so that lookups can ignore diacritics and letter case.
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the case-folded, diacritic-stripped form of s.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é -> e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
//
// Characters without a decomposition (such as "đ") are kept as-is.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}

	return strings.ToLower(result)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
