// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"slices"

	"github.com/taibuivan/bookcatalog/internal/core/image"
	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
	"github.com/taibuivan/bookcatalog/internal/platform/reviews"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
	"github.com/taibuivan/bookcatalog/pkg/pagination"
	"github.com/taibuivan/bookcatalog/pkg/pointer"
	"github.com/taibuivan/bookcatalog/pkg/slice"
	"github.com/taibuivan/bookcatalog/pkg/uuid"
)

// # Reads

// List returns a page of books matching filter.
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]*Book, int, error) {
	return service.repo.List(context, filter, params.Limit, params.Offset())
}

/*
Get returns an active book with the live rating from the review service.

Description: A failing review service never fails the read. The rating then
reads as zero and the failure is logged and counted.

Returns:
  - *Detail: The book with rating and reviewCount
  - error: NotFound when the book is absent or soft-deleted
*/
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if book.Status != StatusActive {
		return nil, apperr.NotFound("Book")
	}

	summary, err := service.ratings.AverageRating(context, id)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "rating_lookup_failed",
			slog.String("book_id", id), slog.Any("error", err))
		metrics.RatingLookupFailures.Inc()
		summary = reviews.Summary{}
	}

	return &Detail{Book: book, Rating: summary.AverageRating, ReviewCount: summary.TotalReviews}, nil
}

/*
GetMany returns the active books among ids in request order.

Description: Malformed ids, unknown ids and soft-deleted books are dropped
without error. A repeated id yields the book again.
*/
func (service *Service) GetMany(context context.Context, ids []string) ([]*Book, error) {
	ids = slice.Filter(ids, validate.IsUUID)
	if len(ids) == 0 {
		return []*Book{}, nil
	}

	found, err := service.repo.FindByIDs(context, slice.Unique(ids), StatusActive)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Book, len(found))
	for _, book := range found {
		byID[book.ID] = book
	}

	books := make([]*Book, 0, len(ids))
	for _, id := range ids {
		if book, ok := byID[id]; ok {
			books = append(books, book)
		}
	}
	return books, nil
}

// # Writes

/*
Create adds a book with its images.

Description: The images are stored and recorded before the book row. Any
failure after staging removes the new files and records again.

Parameters:
  - context: context.Context
  - input: Input (every field but description required, at least one image)
  - createdBy: string (id of the uploading user)

Returns:
  - *Book: The stored book, read-expanded
  - error: ValidationError, Conflict on a taken title
*/
func (service *Service) Create(context context.Context, input Input, createdBy string) (*Book, error) {
	input.Title = pointer.Trim(input.Title)
	input.Description = pointer.Trim(input.Description)

	// ── 1. Validate ──
	if err := validateInput(input, true); err != nil {
		return nil, err
	}
	if len(input.Images) == 0 {
		return nil, errNoImages
	}
	if err := service.ensureTitleFree(context, *input.Title, ""); err != nil {
		return nil, err
	}
	if err := service.ensureReferences(context, input); err != nil {
		return nil, err
	}

	// ── 2. Stage images ──
	attachment, err := service.images.Stage(context, input.Images, createdBy)
	if err != nil {
		return nil, err
	}

	// ── 3. Record images and insert ──
	book := &Book{
		ID:            uuid.New(),
		Title:         *input.Title,
		Description:   pointer.Val(input.Description),
		Price:         *input.Price,
		CategoryID:    *input.CategoryID,
		PublisherID:   *input.PublisherID,
		AuthorID:      *input.AuthorID,
		StockCount:    *input.StockCount,
		Status:        StatusActive,
		RatingSummary: RatingSummary{RatingDistribution: NewDistribution()},
	}
	book.normalize()

	if err := service.insert(context, book, attachment); err != nil {
		service.rollback(context, attachment)
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "book_created",
		slog.String("id", book.ID), slog.String("title", book.Title), slog.Int("images", len(book.ImageIDs)))

	return service.repo.FindByID(context, book.ID)
}

func (service *Service) insert(context context.Context, book *Book, attachment *image.Attachment) error {
	if err := attachment.Commit(context); err != nil {
		return err
	}

	book.ImageIDs = attachment.IDs()
	if err := service.repo.Create(context, book); err != nil {
		return duplicateTitle(err)
	}
	return nil
}

/*
Update applies the supplied fields and resolves the image set.

Description: With keepExistingImages the current images stay and uploads are
appended; otherwise the current images are deleted and only the uploads
remain. The resulting set must not be empty, which is checked before anything
is deleted. Once the old images are removed they are not restored if a later
step fails; only the new uploads are rolled back.

Returns:
  - *Book: The updated book, read-expanded
  - error: NotFound, ValidationError, Conflict on a title used by another book
*/
func (service *Service) Update(context context.Context, id string, input Input, createdBy string) (*Book, error) {
	existing, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	input.Title = pointer.Trim(input.Title)
	input.Description = pointer.Trim(input.Description)

	// ── 1. Validate ──
	if err := validateInput(input, false); err != nil {
		return nil, err
	}
	if input.Title != nil {
		if err := service.ensureTitleFree(context, *input.Title, id); err != nil {
			return nil, err
		}
	}
	if err := service.ensureReferences(context, input); err != nil {
		return nil, err
	}

	remaining := len(input.Images)
	if input.KeepExistingImages {
		remaining += len(existing.ImageIDs)
	}
	if remaining == 0 {
		return nil, errNoImages
	}

	// ── 2. Stage new images ──
	attachment, err := service.images.Stage(context, input.Images, createdBy)
	if err != nil {
		return nil, err
	}

	// ── 3. Swap images and write ──
	changes := Changes{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		CategoryID:  input.CategoryID,
		PublisherID: input.PublisherID,
		AuthorID:    input.AuthorID,
		StockCount:  input.StockCount,
	}

	if err := service.apply(context, existing, input.KeepExistingImages, changes, attachment); err != nil {
		service.rollback(context, attachment)
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "book_updated",
		slog.String("id", id), slog.Bool("kept_images", input.KeepExistingImages), slog.Int("new_images", len(input.Images)))

	return service.repo.FindByID(context, id)
}

func (service *Service) apply(context context.Context, existing *Book, keep bool, changes Changes, attachment *image.Attachment) error {
	if err := attachment.Commit(context); err != nil {
		return err
	}

	var kept []string
	if keep {
		kept = slices.Clone(existing.ImageIDs)
	} else if err := service.images.Remove(context, existing.ImageIDs); err != nil {
		return err
	}

	changes.ImageIDs = append(kept, attachment.IDs()...)
	changes.normalize()

	if err := service.repo.Update(context, existing.ID, changes); err != nil {
		return duplicateTitle(err)
	}
	return nil
}

// # Lifecycle

/*
Delete soft-deletes a book of any status.

Description: Deleting an already deleted book succeeds and re-stamps
updatedAt. Nothing outside the catalog is consulted.
*/
func (service *Service) Delete(context context.Context, id string) (*Book, error) {
	if err := service.repo.SetStatus(context, id, StatusDeleted, sourcesOf(StatusDeleted)); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).WarnContext(context, "book_deleted", slog.String("id", id))
	return service.repo.FindByID(context, id)
}

// Restore reactivates a soft-deleted book. Any other state reads as NotFound.
func (service *Service) Restore(context context.Context, id string) (*Book, error) {
	err := service.repo.SetStatus(context, id, StatusActive, sourcesOf(StatusActive))
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound("Deleted book")
	}
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "book_restored", slog.String("id", id))
	return service.repo.FindByID(context, id)
}
