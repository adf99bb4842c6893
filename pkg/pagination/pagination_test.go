// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookcatalog/pkg/pagination"
)

/*
TestFromRequest covers defaults, fallbacks and the upper cap.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		expect pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: 12}},
		{"explicit", "?page=2&limit=10", pagination.Params{Page: 2, Limit: 10}},
		{"garbage", "?page=abc&limit=xyz", pagination.Params{Page: 1, Limit: 12}},
		{"non_positive", "?page=0&limit=-3", pagination.Params{Page: 1, Limit: 12}},
		{"capped", "?limit=1000", pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/books"+tt.query, nil)
			assert.Equal(t, tt.expect, pagination.FromRequest(request, 12))
		})
	}
}

/*
TestNewMeta checks the ceil(total/limit) page count and offsets.
*/
func TestNewMeta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 10}

	meta := pagination.NewMeta(params, 15)
	assert.Equal(t, pagination.Meta{CurrentPage: 2, TotalPages: 2, ItemsPerPage: 10, TotalItems: 15}, meta)
	assert.Equal(t, 10, params.Offset())

	assert.Equal(t, 0, pagination.NewMeta(pagination.Params{Page: 1, Limit: 10}, 0).TotalPages)
	assert.Equal(t, 3, pagination.NewMeta(pagination.Params{Page: 1, Limit: 5}, 11).TotalPages)
}
