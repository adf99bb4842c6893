// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookcatalog/pkg/slice"
)

/*
TestSliceHelpers covers Map, Filter and Unique.
*/
func TestSliceHelpers(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, slice.Map([]int{1, 2}, strconv.Itoa))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))

	even := slice.Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)

	assert.Equal(t, []string{"b", "a", "c"}, slice.Unique([]string{"b", "a", "b", "c", "a"}))
}
