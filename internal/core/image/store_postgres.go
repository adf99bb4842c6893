// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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

/*
CreateMany inserts one record per image using a pgx batch.

Description: Every statement of the batch runs in the implicit transaction
pgx opens for it, so either all records are stored or none.
*/
func (repository *PostgresRepository) CreateMany(context context.Context, images []*Image) error {
	if len(images) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`,
		schema.CatalogImage.Table,
		schema.CatalogImage.ID, schema.CatalogImage.Filename, schema.CatalogImage.Path,
		schema.CatalogImage.CreatedBy, schema.CatalogImage.CreatedAt,
		schema.CatalogImage.CreatedAt,
	)

	batch := &pgx.Batch{}
	for _, image := range images {
		batch.Queue(query, image.ID, image.Filename, image.Path, image.CreatedBy)
	}

	result := repository.pool.SendBatch(context, batch)
	defer result.Close()

	for i, image := range images {
		if err := result.QueryRow().Scan(&image.CreatedAt); err != nil {
			return dberr.Wrap(err, fmt.Sprintf("batch_insert_image_%d", i))
		}
	}

	return nil
}

// FindByIDs fetches the existing records among ids.
func (repository *PostgresRepository) FindByIDs(context context.Context, ids []string) ([]*Image, error) {
	if len(ids) == 0 {
		return []*Image{}, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::uuid[])`,
		strings.Join(schema.CatalogImage.Columns(), ", "), schema.CatalogImage.Table, schema.CatalogImage.ID,
	)

	rows, err := repository.pool.Query(context, query, ids)
	if err != nil {
		return nil, dberr.Wrap(err, "find_images")
	}
	defer rows.Close()

	images := []*Image{}
	for rows.Next() {
		image := &Image{}
		if err := rows.Scan(&image.ID, &image.Filename, &image.Path, &image.CreatedBy, &image.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_image")
		}
		images = append(images, image)
	}

	return images, dberr.Wrap(rows.Err(), "find_images")
}

// DeleteByIDs removes the records; ids that do not exist are ignored.
func (repository *PostgresRepository) DeleteByIDs(context context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1::uuid[])`,
		schema.CatalogImage.Table, schema.CatalogImage.ID,
	)

	_, err := repository.pool.Exec(context, query, ids)
	return dberr.Wrap(err, "delete_images")
}
