// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/database/schema"
	"github.com/taibuivan/bookcatalog/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Query Fragments

// bookColumns is the expanded select list for a book aliased "b", with its
// category (c), publisher (p) and author (a) joined.
var bookColumns = func() string {
	book := schema.CatalogBook
	columns := []string{
		"b." + book.ID + "::text",
		"b." + book.Title,
		"b." + book.TitleNoAccent,
		"b." + book.Description,
		"b." + book.Price + "::float8",
		"b." + book.ImageIDs + "::text[]",
		"b." + book.CategoryID + "::text",
		"b." + book.PublisherID + "::text",
		"b." + book.AuthorID + "::text",
		"b." + book.Availability,
		"b." + book.StockCount,
		"b." + book.SalesCount,
		"b." + book.Status,
		"b." + book.AverageRating + "::float8",
		"b." + book.TotalReviews,
		"b." + book.RatingDistribution,
		"b." + book.CreatedAt,
		"b." + book.UpdatedAt,
		referenceJSON("c", schema.CatalogCategory),
		referenceJSON("p", schema.CatalogPublisher),
		referenceJSON("a", schema.CatalogAuthor),
		imagesJSON,
	}
	return strings.Join(columns, ",\n\t\t\t")
}()

var bookFrom = fmt.Sprintf(`%s b
		LEFT JOIN %s c ON c.%s = b.%s
		LEFT JOIN %s p ON p.%s = b.%s
		LEFT JOIN %s a ON a.%s = b.%s`,
	schema.CatalogBook.Table,
	schema.CatalogCategory.Table, schema.CatalogCategory.ID, schema.CatalogBook.CategoryID,
	schema.CatalogPublisher.Table, schema.CatalogPublisher.ID, schema.CatalogBook.PublisherID,
	schema.CatalogAuthor.Table, schema.CatalogAuthor.ID, schema.CatalogBook.AuthorID,
)

// imagesJSON aggregates the image records in imageids order.
var imagesJSON = fmt.Sprintf(`COALESCE((
			SELECT json_agg(json_build_object(
				'id', i.%s, 'filename', i.%s, 'path', i.%s, 'createdBy', i.%s, 'createdAt', i.%s
			) ORDER BY u.ord)
			FROM unnest(b.%s) WITH ORDINALITY AS u(imageid, ord)
			JOIN %s i ON i.%s = u.imageid
		), '[]'::json)`,
	schema.CatalogImage.ID, schema.CatalogImage.Filename, schema.CatalogImage.Path,
	schema.CatalogImage.CreatedBy, schema.CatalogImage.CreatedAt,
	schema.CatalogBook.ImageIDs,
	schema.CatalogImage.Table, schema.CatalogImage.ID,
)

// referenceJSON renders a joined reference row as a JSON object, or NULL when
// the join found nothing.
func referenceJSON(alias string, table schema.CatalogReferenceTable) string {
	pairs := []string{
		fmt.Sprintf("'id', %s.%s", alias, table.ID),
		fmt.Sprintf("'name', %s.%s", alias, table.Name),
	}
	for _, column := range table.Attributes {
		pairs = append(pairs, fmt.Sprintf("'%s', %s.%s", column, alias, column))
	}
	pairs = append(pairs,
		fmt.Sprintf("'createdAt', %s.%s", alias, table.CreatedAt),
		fmt.Sprintf("'updatedAt', %s.%s", alias, table.UpdatedAt),
	)

	return fmt.Sprintf("CASE WHEN %s.%s IS NULL THEN NULL ELSE json_build_object(%s) END",
		alias, table.ID, strings.Join(pairs, ", "))
}

// scanBook reads one row selected with bookColumns, followed by extra targets.
func scanBook(row pgx.Row, extra ...any) (*Book, error) {
	book := &Book{}

	var (
		status       string
		distribution []byte
		category     []byte
		publisher    []byte
		author       []byte
		images       []byte
	)

	targets := []any{
		&book.ID, &book.Title, &book.TitleNoAccent, &book.Description, &book.Price, &book.ImageIDs,
		&book.CategoryID, &book.PublisherID, &book.AuthorID,
		&book.Availability, &book.StockCount, &book.SalesCount, &status,
		&book.AverageRating, &book.TotalReviews, &distribution,
		&book.CreatedAt, &book.UpdatedAt,
		&category, &publisher, &author, &images,
	}

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}

	book.Status = Status(status)

	book.RatingDistribution = NewDistribution()
	for _, decode := range []struct {
		raw    []byte
		target any
	}{
		{distribution, &book.RatingDistribution},
		{category, &book.Category},
		{publisher, &book.Publisher},
		{author, &book.Author},
		{images, &book.Images},
	} {
		if len(decode.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(decode.raw, decode.target); err != nil {
			return nil, fmt.Errorf("postgres: failed to decode book %s: %w", book.ID, err)
		}
	}

	return book, nil
}

// # Listing

// conditions accumulates WHERE clauses and their positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

// arg registers value and returns its placeholder.
func (c *conditions) arg(value any) string {
	c.args = append(c.args, value)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *conditions) add(format string, values ...any) {
	c.clauses = append(c.clauses, fmt.Sprintf(format, values...))
}

func (c *conditions) where() string {
	return strings.Join(c.clauses, " AND ")
}

// listConditions translates a filter into WHERE clauses over bookFrom.
func listConditions(filter Filter) *conditions {
	book := schema.CatalogBook
	c := &conditions{}

	c.add("b.%s = %s", book.Status, c.arg(string(filter.Status)))

	if len(filter.CategoryIDs) > 0 {
		c.add("b.%s = ANY(%s::uuid[])", book.CategoryID, c.arg(filter.CategoryIDs))
	}
	if len(filter.AuthorIDs) > 0 {
		c.add("b.%s = ANY(%s::uuid[])", book.AuthorID, c.arg(filter.AuthorIDs))
	}
	if len(filter.PublisherIDs) > 0 {
		c.add("b.%s = ANY(%s::uuid[])", book.PublisherID, c.arg(filter.PublisherIDs))
	}

	if filter.Available != nil {
		c.add("b.%s = %s", book.Availability, c.arg(*filter.Available))
	}
	if filter.MinPrice != nil {
		c.add("b.%s >= %s", book.Price, c.arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		c.add("b.%s <= %s", book.Price, c.arg(*filter.MaxPrice))
	}

	// The keyword is matched after the joins, so count and page see the same set.
	if filter.Keyword != "" {
		pattern := c.arg("%" + escapeLike(filter.Keyword) + "%")
		c.add("(b.%s ILIKE %s OR a.%s ILIKE %s OR p.%s ILIKE %s)",
			book.Title, pattern,
			schema.CatalogAuthor.Name, pattern,
			schema.CatalogPublisher.Name, pattern,
		)
	}

	return c
}

// escapeLike makes % and _ match literally under the default backslash escape.
func escapeLike(keyword string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(keyword)
}

// listQuery builds the page statement. Filters apply to the joined rows, so the
// window count and the page see the same set.
func listQuery(filter Filter, limit, offset int) (string, []any) {
	c := listConditions(filter)

	column, ok := sortColumns[filter.SortField]
	if !ok {
		column = schema.CatalogBook.CreatedAt
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT
			%s,
			COUNT(*) OVER() AS total_count
		FROM %s
		WHERE %s
		ORDER BY b.%s %s, b.%s %s
		LIMIT %s OFFSET %s
	`,
		bookColumns, bookFrom, c.where(),
		column, direction, schema.CatalogBook.ID, direction,
		c.arg(limit), c.arg(offset),
	)
	return query, c.args
}

// countQuery counts the matches of filter over the same joins as listQuery.
func countQuery(filter Filter) (string, []any) {
	c := listConditions(filter)
	return fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, bookFrom, c.where()), c.args
}

/*
List returns one page of books and the total number of matches.

Description: The total comes from COUNT(*) OVER() on the same statement. A page
past the end has no rows to carry it, so the count is then queried separately.

Parameters:
  - context: context.Context
  - filter: Filter (already validated; SortField is a sortColumns key)
  - limit: int
  - offset: int

Returns:
  - []*Book: The page, in the requested order with id as tie-break
  - int: Total matching books
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Book, int, error) {
	query, args := listQuery(filter, limit, offset)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}
	defer rows.Close()

	books := []*Book{}
	var total int
	for rows.Next() {
		book, err := scanBook(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_books")
	}

	if len(books) == 0 && offset > 0 {
		query, args := countQuery(filter)
		if err := repository.pool.QueryRow(context, query, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, "count_books")
		}
	}

	return books, total, nil
}

// # Lookups

// FindByID fetches a book of any status.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT
			%s
		FROM %s
		WHERE b.%s = $1
	`, bookColumns, bookFrom, schema.CatalogBook.ID)

	book, err := scanBook(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, notFound(dberr.Wrap(err, "get_book"))
	}
	return book, nil
}

// FindByIDs fetches the books among ids that have the given status.
func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string, status Status) ([]*Book, error) {
	if len(ids) == 0 {
		return []*Book{}, nil
	}

	query := fmt.Sprintf(`
		SELECT
			%s
		FROM %s
		WHERE b.%s = ANY($1::uuid[]) AND b.%s = $2
	`, bookColumns, bookFrom, schema.CatalogBook.ID, schema.CatalogBook.Status)

	rows, err := repository.pool.Query(context, query, ids, string(status))
	if err != nil {
		return nil, dberr.Wrap(err, "find_books")
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_book")
		}
		books = append(books, book)
	}

	return books, dberr.Wrap(rows.Err(), "find_books")
}

// TitleTaken reports whether another book, of any status, uses title.
func (repository *PostgresRepository) TitleTaken(context context.Context, title, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND ($2 = '' OR %s::text <> $2)
		)
	`, schema.CatalogBook.Table, schema.CatalogBook.Title, schema.CatalogBook.ID)

	var taken bool
	if err := repository.pool.QueryRow(context, query, title, excludeID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "check_book_title")
	}
	return taken, nil
}

// # Mutations

// Create inserts book. The unique index on title rejects a duplicate that
// raced past [PostgresRepository.TitleTaken].
func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	table := schema.CatalogBook

	distribution, err := json.Marshal(book.RatingDistribution)
	if err != nil {
		return apperr.Internal(fmt.Errorf("book: encode rating distribution: %w", err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s, %s, %s, %s, %s, %s, %s,
			%s, %s
		)
		VALUES ($1, $2, $3, $4, $5, $6::uuid[], $7, $8, $9, $10, $11, $12, $13, $14, $15, $16::jsonb, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table,
		table.ID, table.Title, table.TitleNoAccent, table.Description, table.Price, table.ImageIDs, table.CategoryID, table.PublisherID,
		table.AuthorID, table.Availability, table.StockCount, table.SalesCount, table.Status, table.AverageRating, table.TotalReviews, table.RatingDistribution,
		table.CreatedAt, table.UpdatedAt,
		table.CreatedAt, table.UpdatedAt,
	)

	err = repository.pool.QueryRow(context, query,
		book.ID, book.Title, book.TitleNoAccent, book.Description, book.Price, book.ImageIDs, book.CategoryID, book.PublisherID,
		book.AuthorID, book.Availability, book.StockCount, book.SalesCount, string(book.Status), book.AverageRating, book.TotalReviews, distribution,
	).Scan(&book.CreatedAt, &book.UpdatedAt)

	return dberr.Wrap(err, "create_book")
}

/*
Update writes the supplied columns of changes and refreshes updatedat.

Description: Only non-nil fields are written. The derived columns are taken
from the normalized values, never from the caller.
*/
func (repository *PostgresRepository) Update(context context.Context, id string, changes Changes) error {
	table := schema.CatalogBook

	var sets []string
	args := []any{id}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if changes.Title != nil {
		set(table.Title, *changes.Title)
	}
	if value := changes.TitleNoAccent(); value != nil {
		set(table.TitleNoAccent, *value)
	}
	if changes.Description != nil {
		set(table.Description, *changes.Description)
	}
	if changes.Price != nil {
		set(table.Price, *changes.Price)
	}
	if changes.CategoryID != nil {
		set(table.CategoryID, *changes.CategoryID)
	}
	if changes.PublisherID != nil {
		set(table.PublisherID, *changes.PublisherID)
	}
	if changes.AuthorID != nil {
		set(table.AuthorID, *changes.AuthorID)
	}
	if changes.StockCount != nil {
		set(table.StockCount, *changes.StockCount)
	}
	if value := changes.Availability(); value != nil {
		set(table.Availability, *value)
	}
	if changes.ImageIDs != nil {
		set(table.ImageIDs, changes.ImageIDs)
	}

	sets = append(sets, fmt.Sprintf("%s = NOW()", table.UpdatedAt))

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`, table.Table, strings.Join(sets, ", "), table.ID)

	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

// SetStatus performs a guarded status transition and re-stamps updatedat.
func (repository *PostgresRepository) SetStatus(context context.Context, id string, to Status, from []Status) error {
	table := schema.CatalogBook

	sources := make([]string, 0, len(from))
	for _, status := range from {
		sources = append(sources, string(status))
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NOW()
		WHERE %s = $1 AND %s = ANY($3)
	`, table.Table, table.Status, table.UpdatedAt, table.ID, table.Status)

	tag, err := repository.pool.Exec(context, query, id, string(to), sources)
	if err != nil {
		return dberr.Wrap(err, "set_book_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

// IncrementSales adds quantity to salescount without reading it first.
func (repository *PostgresRepository) IncrementSales(context context.Context, id string, quantity int) error {
	table := schema.CatalogBook
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = %s + $2, %s = NOW()
		WHERE %s = $1
	`, table.Table, table.SalesCount, table.SalesCount, table.UpdatedAt, table.ID)

	tag, err := repository.pool.Exec(context, query, id, quantity)
	if err != nil {
		return dberr.Wrap(err, "increment_book_sales")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

// SaveRating writes average, total and distribution in one statement.
func (repository *PostgresRepository) SaveRating(context context.Context, id string, summary RatingSummary) error {
	table := schema.CatalogBook

	distribution, err := json.Marshal(summary.RatingDistribution)
	if err != nil {
		return apperr.Internal(fmt.Errorf("book: encode rating distribution: %w", err))
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4::jsonb, %s = NOW()
		WHERE %s = $1
	`, table.Table, table.AverageRating, table.TotalReviews, table.RatingDistribution, table.UpdatedAt, table.ID)

	tag, err := repository.pool.Exec(context, query, id, summary.AverageRating, summary.TotalReviews, distribution)
	if err != nil {
		return dberr.Wrap(err, "save_book_rating")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

// notFound replaces the generic not-found error with one naming books.
func notFound(err error) error {
	if apperr.IsNotFound(err) {
		return apperr.NotFound("Book")
	}
	return err
}
