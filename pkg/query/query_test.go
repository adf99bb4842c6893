// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/pkg/query"
)

/*
TestStringSlice trims entries and drops empty ones.
*/
func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Equal(t, []string{"a", "b", "c"}, query.StringSlice(" a, b,,c ,"))
}

/*
TestOptionalBool distinguishes absent, literal and malformed values.
*/
func TestOptionalBool(t *testing.T) {
	value, ok := query.OptionalBool("")
	assert.True(t, ok)
	assert.Nil(t, value)

	value, ok = query.OptionalBool("TRUE")
	require.True(t, ok)
	assert.True(t, *value)

	value, ok = query.OptionalBool("false")
	require.True(t, ok)
	assert.False(t, *value)

	_, ok = query.OptionalBool("yes")
	assert.False(t, ok)
}

/*
TestOptionalFloat parses numbers and reports malformed input.
*/
func TestOptionalFloat(t *testing.T) {
	value, ok := query.OptionalFloat("12.5")
	require.True(t, ok)
	assert.Equal(t, 12.5, *value)

	_, ok = query.OptionalFloat("cheap")
	assert.False(t, ok)

	value, ok = query.OptionalFloat("NaN")
	require.True(t, ok)
	assert.True(t, math.IsNaN(*value))
}
