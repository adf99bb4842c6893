// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Persistence Interface

// Repository defines storage operations for books. Reads return the
// read-expanded form.
type Repository interface {
	// List returns one page of books matching filter and the total match count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Book, int, error)

	// FindByID returns a book of any status.
	FindByID(ctx context.Context, id string) (*Book, error)

	// FindByIDs returns the books with status among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string, status Status) ([]*Book, error)

	// TitleTaken reports whether a book other than excludeID uses title.
	TitleTaken(ctx context.Context, title, excludeID string) (bool, error)

	// Create inserts a normalized book.
	Create(ctx context.Context, book *Book) error

	// Update applies normalized changes to a book of any status.
	Update(ctx context.Context, id string, changes Changes) error

	// SetStatus moves a book whose status is among from to status to.
	// It returns NotFound when no such book exists.
	SetStatus(ctx context.Context, id string, to Status, from []Status) error

	// IncrementSales adds quantity to the sales counter in one statement.
	IncrementSales(ctx context.Context, id string, quantity int) error

	// SaveRating stores the three rating fields together.
	SaveRating(ctx context.Context, id string, summary RatingSummary) error
}
