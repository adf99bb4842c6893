// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/bookcatalog/internal/core/book"
	"github.com/taibuivan/bookcatalog/internal/core/image"
	"github.com/taibuivan/bookcatalog/internal/platform/migration"
	"github.com/taibuivan/bookcatalog/internal/platform/postgres"
	"github.com/taibuivan/bookcatalog/pkg/pointer"
)

// # Query Building

/*
TestListQuery checks that every filter becomes a bound clause over the joined
rows, in a fixed placeholder order.
*/
func TestListQuery(t *testing.T) {
	filter := book.Filter{
		Keyword:      "du",
		CategoryIDs:  []string{categoryID},
		AuthorIDs:    []string{authorID},
		PublisherIDs: []string{publisherID},
		Available:    pointer.To(true),
		MinPrice:     pointer.To(10.0),
		MaxPrice:     pointer.To(20.0),
		Status:       book.StatusActive,
		SortField:    "price",
		SortDesc:     true,
	}

	query, args := book.ListQuery(filter, 12, 24)

	for _, clause := range []string{
		"b.status = $1",
		"b.categoryid = ANY($2::uuid[])",
		"b.authorid = ANY($3::uuid[])",
		"b.publisherid = ANY($4::uuid[])",
		"b.availability = $5",
		"b.price >= $6",
		"b.price <= $7",
		"(b.title ILIKE $8 OR a.name ILIKE $8 OR p.name ILIKE $8)",
		"ORDER BY b.price DESC, b.id DESC",
		"LIMIT $9 OFFSET $10",
		"COUNT(*) OVER() AS total_count",
	} {
		assert.Contains(t, query, clause)
	}

	assert.Equal(t, []any{
		"active",
		[]string{categoryID}, []string{authorID}, []string{publisherID},
		true, 10.0, 20.0,
		"%du%",
		12, 24,
	}, args)

	where := strings.Index(query, "WHERE b.status")
	require.Positive(t, where)
	for _, join := range []string{"LEFT JOIN catalog.author a", "LEFT JOIN catalog.publisher p", "LEFT JOIN catalog.category c"} {
		position := strings.Index(query, join)
		require.Positive(t, position, join)
		assert.Less(t, position, where, "%s must precede the filters", join)
	}
}

/*
TestListQuery_Minimal lists by status alone and falls back to createdat.
*/
func TestListQuery_Minimal(t *testing.T) {
	query, args := book.ListQuery(book.Filter{Status: book.StatusDeleted}, 5, 0)

	assert.Contains(t, query, "WHERE b.status = $1\n")
	assert.Contains(t, query, "ORDER BY b.createdat ASC, b.id ASC")
	assert.NotContains(t, query, "ILIKE")
	assert.NotContains(t, query, "ANY(")
	assert.Equal(t, []any{"deleted", 5, 0}, args)
}

/*
TestCountQuery counts with the same joins and clauses as the page.
*/
func TestCountQuery(t *testing.T) {
	filter := book.Filter{Keyword: "kiều", AuthorIDs: []string{authorID}, Status: book.StatusActive}

	listSQL, listArgs := book.ListQuery(filter, 12, 12)
	countSQL, countArgs := book.CountQuery(filter)

	clauses := "b.status = $1 AND b.authorid = ANY($2::uuid[]) AND (b.title ILIKE $3 OR a.name ILIKE $3 OR p.name ILIKE $3)"
	assert.Contains(t, listSQL, clauses)
	assert.Contains(t, countSQL, "WHERE "+clauses)
	assert.True(t, strings.HasPrefix(countSQL, "SELECT count(*) FROM catalog.book b"))
	assert.Contains(t, countSQL, "LEFT JOIN catalog.author a")
	assert.Contains(t, countSQL, "LEFT JOIN catalog.publisher p")

	assert.Equal(t, listArgs[:len(countArgs)], countArgs)
	assert.Equal(t, []any{"active", []string{authorID}, "%kiều%"}, countArgs)
}

/*
TestEscapeLike keeps wildcard characters of the keyword literal.
*/
func TestEscapeLike(t *testing.T) {
	tests := []struct {
		keyword string
		want    string
	}{
		{"kiều", "kiều"},
		{"50%", `50\%`},
		{"snake_case", `snake\_case`},
		{`C:\books`, `C:\\books`},
		{`50%_off\`, `50\%\_off\\`},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, book.EscapeLike(tt.keyword))
		})
	}

	_, args := book.ListQuery(book.Filter{Keyword: `50%_off\`, Status: book.StatusActive}, 1, 0)
	assert.Equal(t, `%50\%\_off\\%`, args[1])
}

// # PostgreSQL

// openCatalog migrates and connects to TEST_DATABASE_URL, or skips.
func openCatalog(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	require.NoError(t, migration.RunUp(dsn, "../../../data/migrations", logger))

	pool, err := postgres.NewPool(context.Background(), dsn, 4, logger)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

/*
TestPostgresRepository_List searches the joined author and publisher names and
counts a page past the end. Names carry a run suffix so reruns do not collide.
*/
func TestPostgresRepository_List(t *testing.T) {
	ctx := context.Background()
	pool := openCatalog(t)
	books := book.NewPostgresRepository(pool)
	images := image.NewPostgresRepository(pool)

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	ids := struct{ author, publisher, category string }{uuid.NewString(), uuid.NewString(), uuid.NewString()}

	_, err := pool.Exec(ctx, `INSERT INTO catalog.author (id, name) VALUES ($1, $2)`, ids.author, "Nguyễn Du "+suffix)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO catalog.publisher (id, name) VALUES ($1, $2)`, ids.publisher, "Văn Học "+suffix)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO catalog.category (id, name) VALUES ($1, $2)`, ids.category, "Thơ "+suffix)
	require.NoError(t, err)

	// Creator ids come from the identity service and need not be UUIDs.
	creator := "64b7f0c2e4b0a1b2c3d4e5f6"
	cover := &image.Image{
		ID:        uuid.NewString(),
		Filename:  "kieu.png",
		Path:      "images/books/" + suffix + ".png",
		CreatedBy: &creator,
	}
	require.NoError(t, images.CreateMany(ctx, []*image.Image{cover}))

	stored, err := images.FindByIDs(ctx, []string{cover.ID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, creator, *stored[0].CreatedBy)

	kieu := &book.Book{
		ID:            uuid.NewString(),
		Title:         "Truyện Kiều " + suffix,
		TitleNoAccent: "truyen kieu " + suffix,
		Price:         9_999_999_999.99,
		ImageIDs:      []string{cover.ID},
		CategoryID:    ids.category,
		PublisherID:   ids.publisher,
		AuthorID:      ids.author,
		Availability:  true,
		StockCount:    2147483647,
		Status:        book.StatusActive,
		RatingSummary: book.RatingSummary{RatingDistribution: book.NewDistribution()},
	}
	require.NoError(t, books.Create(ctx, kieu))

	tests := []struct {
		keyword string
		want    int
	}{
		{"du", 1},
		{"văn học", 1},
		{"kiều", 1},
		{"nguyen", 0},
		{"du%", 0},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			filter := book.Filter{Keyword: tt.keyword, AuthorIDs: []string{ids.author}, Status: book.StatusActive}

			page, total, err := books.List(ctx, filter, 12, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
			require.Len(t, page, tt.want)
			if tt.want > 0 {
				assert.Equal(t, kieu.ID, page[0].ID)
				assert.Equal(t, "Nguyễn Du "+suffix, page[0].Author.Name)
				assert.Equal(t, 9_999_999_999.99, page[0].Price)
				require.Len(t, page[0].Images, 1)
				assert.Equal(t, creator, *page[0].Images[0].CreatedBy)
			}
		})
	}

	t.Run("page_past_end", func(t *testing.T) {
		filter := book.Filter{Keyword: "du", AuthorIDs: []string{ids.author}, Status: book.StatusActive}

		page, total, err := books.List(ctx, filter, 12, 12)
		require.NoError(t, err)
		assert.Empty(t, page)
		assert.Equal(t, 1, total)
	})
}
