// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bookcatalog/internal/platform/migration"
)

/*
TestPgx5DSN rewrites URL schemes for the migrate driver.
*/
func TestPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/catalog", "pgx5://u:p@db:5432/catalog"},
		{"postgresql://u:p@db/catalog?sslmode=disable", "pgx5://u:p@db/catalog?sslmode=disable"},
		{"pgx5://db/catalog", "pgx5://db/catalog"},
		{"host=db dbname=catalog", "host=db dbname=catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.Pgx5DSN(tt.in))
		})
	}
}
