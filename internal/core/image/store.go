// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import "context"

// # Persistence Interface

// Repository defines storage operations for image records.
type Repository interface {
	// CreateMany inserts all images in one round trip and fills CreatedAt.
	CreateMany(ctx context.Context, images []*Image) error

	// FindByIDs returns the records that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*Image, error)

	// DeleteByIDs removes the records with the given ids.
	DeleteByIDs(ctx context.Context, ids []string) error
}
