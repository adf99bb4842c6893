// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookcatalog/pkg/pointer"
)

/*
TestPointerHelpers covers nil and non-nil inputs.
*/
func TestPointerHelpers(t *testing.T) {
	var missing *int
	assert.Equal(t, 0, pointer.Val(missing))
	assert.Equal(t, 12, pointer.Fallback(missing, 12))
	assert.Equal(t, 3, pointer.Fallback(pointer.To(3), 12))

	assert.Nil(t, pointer.Trim(nil))
	assert.Equal(t, "Nguyen Du", *pointer.Trim(pointer.To("  Nguyen Du ")))
}
