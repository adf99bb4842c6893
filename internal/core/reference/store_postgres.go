// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/database/schema"
	"github.com/taibuivan/bookcatalog/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// scanTargets lists the destinations matching kind.Table.Columns().
func scanTargets(kind Kind, entity *Entity) []any {
	targets := []any{&entity.ID, &entity.Name}
	for _, column := range kind.Table.Attributes {
		targets = append(targets, entity.attribute(column))
	}
	return append(targets, &entity.CreatedAt, &entity.UpdatedAt)
}

/*
List returns one page of entities ordered by name.

Description: The id restriction and the count share one WHERE clause so that
totals always describe the filtered set.
*/
func (repository *PostgresRepository) List(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entity, int, error) {
	table := kind.Table

	var where string
	args := []any{}
	if len(filter.IDs) > 0 {
		where = fmt.Sprintf("WHERE %s = ANY($1::uuid[])", table.ID)
		args = append(args, filter.IDs)
	}

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s %s`, table.Table, where)

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_"+kind.Plural)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY %s ASC, %s ASC
		LIMIT $%d OFFSET $%d
	`,
		strings.Join(table.Columns(), ", "), table.Table, where,
		table.Name, table.ID, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_"+kind.Plural)
	}
	defer rows.Close()

	entities := []*Entity{}
	for rows.Next() {
		entity := &Entity{}
		if err := rows.Scan(scanTargets(kind, entity)...); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_"+kind.Key)
		}
		entities = append(entities, entity)
	}

	return entities, total, dberr.Wrap(rows.Err(), "list_"+kind.Plural)
}

// FindByID fetches a single entity.
func (repository *PostgresRepository) FindByID(context context.Context, kind Kind, id string) (*Entity, error) {
	table := kind.Table
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(table.Columns(), ", "), table.Table, table.ID,
	)

	entity := &Entity{}
	err := repository.db.QueryRow(context, query, id).Scan(scanTargets(kind, entity)...)
	if err != nil {
		return nil, notFound(kind, dberr.Wrap(err, "get_"+kind.Key))
	}
	return entity, nil
}

// NameTaken reports whether another entity of kind already uses name.
func (repository *PostgresRepository) NameTaken(context context.Context, kind Kind, name, excludeID string) (bool, error) {
	table := kind.Table
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND ($2 = '' OR %s::text <> $2)
		)
	`, table.Table, table.Name, table.ID)

	var taken bool
	if err := repository.db.QueryRow(context, query, name, excludeID).Scan(&taken); err != nil {
		return false, dberr.Wrap(err, "check_"+kind.Key+"_name")
	}
	return taken, nil
}

// Create inserts entity and fills its timestamps.
func (repository *PostgresRepository) Create(context context.Context, kind Kind, entity *Entity) error {
	table := kind.Table

	columns := []string{table.ID, table.Name}
	args := []any{entity.ID, entity.Name}
	for _, column := range table.Attributes {
		columns = append(columns, column)
		args = append(args, *entity.attribute(column))
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES (%s, NOW(), NOW())
		RETURNING %s, %s
	`,
		table.Table, strings.Join(columns, ", "), table.CreatedAt, table.UpdatedAt,
		strings.Join(placeholders, ", "),
		table.CreatedAt, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, args...).Scan(&entity.CreatedAt, &entity.UpdatedAt)
	return dberr.Wrap(err, "create_"+kind.Key)
}

// Update persists name and descriptive fields, refreshing UpdatedAt.
func (repository *PostgresRepository) Update(context context.Context, kind Kind, entity *Entity) error {
	table := kind.Table

	sets := []string{fmt.Sprintf("%s = $2", table.Name)}
	args := []any{entity.ID, entity.Name}
	for _, column := range table.Attributes {
		args = append(args, *entity.attribute(column))
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		table.Table, strings.Join(sets, ", "), table.UpdatedAt, table.ID, table.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, args...).Scan(&entity.UpdatedAt)
	return notFound(kind, dberr.Wrap(err, "update_"+kind.Key))
}

/*
Delete removes the entity and returns the deleted row.

Description: The foreign keys from catalog.book are ON DELETE RESTRICT, so a
book inserted after the service-level guard still blocks the delete; that
violation is reported as a conflict.
*/
func (repository *PostgresRepository) Delete(context context.Context, kind Kind, id string) (*Entity, error) {
	table := kind.Table
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		table.Table, table.ID, strings.Join(table.Columns(), ", "),
	)

	entity := &Entity{}
	err := repository.db.QueryRow(context, query, id).Scan(scanTargets(kind, entity)...)
	if dberr.IsForeignKeyViolation(err) {
		return nil, inUse(kind).WithCause(err)
	}
	if err != nil {
		return nil, notFound(kind, dberr.Wrap(err, "delete_"+kind.Key))
	}
	return entity, nil
}

// CountBooks counts books of any status that reference the entity.
func (repository *PostgresRepository) CountBooks(context context.Context, kind Kind, id string) (int, error) {
	query := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s = $1`, schema.CatalogBook.Table, kind.BookColumn)

	var count int
	if err := repository.db.QueryRow(context, query, id).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_"+kind.Key+"_books")
	}
	return count, nil
}

// notFound replaces the generic not-found error with one naming the kind.
func notFound(kind Kind, err error) error {
	if apperr.IsNotFound(err) {
		return apperr.NotFound(kind.Label)
	}
	return err
}
