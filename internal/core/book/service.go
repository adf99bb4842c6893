// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/taibuivan/bookcatalog/internal/core/image"
	"github.com/taibuivan/bookcatalog/internal/core/reference"
	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/reviews"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
	"github.com/taibuivan/bookcatalog/pkg/pointer"
)

// # Collaborators

// ReferenceChecker confirms that an author, category or publisher exists.
type ReferenceChecker interface {
	Exists(ctx context.Context, kind reference.Kind, id string) (bool, error)
}

// ImageManager stores and removes book images.
type ImageManager interface {
	Stage(ctx context.Context, files []image.File, createdBy string) (*image.Attachment, error)
	Remove(ctx context.Context, ids []string) error
}

// RatingSource provides the live rating summary kept by the review service.
type RatingSource interface {
	AverageRating(ctx context.Context, bookID string) (reviews.Summary, error)
	Forget(ctx context.Context, bookID string)
}

// ReviewLookup finds the rating a review currently holds.
type ReviewLookup interface {
	PreviousRating(ctx context.Context, reviewID string) (int, bool, error)
}

// # Service Layer

// Service orchestrates business rules for the book catalog.
type Service struct {
	repo       Repository
	references ReferenceChecker
	images     ImageManager
	ratings    RatingSource
	reviews    ReviewLookup
}

// NewService constructs a new book [Service].
func NewService(repo Repository, references ReferenceChecker, images ImageManager, ratings RatingSource, reviews ReviewLookup) *Service {
	return &Service{
		repo:       repo,
		references: references,
		images:     images,
		ratings:    ratings,
		reviews:    reviews,
	}
}

// # Helpers

// maxPrice is the largest amount a NUMERIC(12, 2) column holds.
const maxPrice = 9_999_999_999.99

var errNoImages = validate.FieldError("images", "Please provide at least one image for the book")

// validateInput checks the supplied fields. On create every required field
// must be present.
func validateInput(input Input, create bool) error {
	validator := &validate.Validator{}

	if create || input.Title != nil {
		validator.Required(FieldTitle, pointer.Val(input.Title))
	}

	if input.Price != nil {
		validatePrice(validator, *input.Price)
	} else {
		validator.Custom(FieldPrice, create, "This field is required")
	}

	if input.StockCount != nil {
		validator.Range(FieldStockCount, *input.StockCount, 0, maxQuantity)
	} else {
		validator.Custom(FieldStockCount, create, "This field is required")
	}

	for _, ref := range []struct {
		field string
		value *string
	}{
		{FieldCategory, input.CategoryID},
		{FieldPublisher, input.PublisherID},
		{FieldAuthor, input.AuthorID},
	} {
		switch {
		case ref.value == nil:
			validator.Custom(ref.field, create, "This field is required")
		case *ref.value == "":
			validator.Required(ref.field, *ref.value)
		default:
			validator.UUID(ref.field, *ref.value)
		}
	}

	return validator.Err()
}

// validatePrice accepts what the price column stores exactly: a non-negative
// amount in whole cents, at most maxPrice.
func validatePrice(validator *validate.Validator, price float64) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		validator.NonNegative(FieldPrice, price)
		return
	}

	// The shortest round-trip form has exactly the decimals the client sent.
	_, fraction, _ := strings.Cut(strconv.FormatFloat(price, 'f', -1, 64), ".")

	validator.Custom(FieldPrice, price > maxPrice, fmt.Sprintf("Price must not exceed %.2f", maxPrice))
	validator.Custom(FieldPrice, len(fraction) > 2, "Price must have at most two decimal places")
}

// ensureReferences rejects ids of authors, categories or publishers that do
// not exist. The foreign keys catch anything deleted in between.
func (service *Service) ensureReferences(context context.Context, input Input) error {
	for _, ref := range []struct {
		kind  reference.Kind
		field string
		id    *string
	}{
		{reference.Category, FieldCategory, input.CategoryID},
		{reference.Publisher, FieldPublisher, input.PublisherID},
		{reference.Author, FieldAuthor, input.AuthorID},
	} {
		if ref.id == nil {
			continue
		}

		exists, err := service.references.Exists(context, ref.kind, *ref.id)
		if err != nil {
			return err
		}
		if !exists {
			return validate.FieldError(ref.field, ref.kind.Label+" does not exist")
		}
	}
	return nil
}

func (service *Service) ensureTitleFree(context context.Context, title, excludeID string) error {
	taken, err := service.repo.TitleTaken(context, title, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errTitleTaken()
	}
	return nil
}

func errTitleTaken() *apperr.AppError {
	return apperr.Conflict("Book title already exists")
}

// duplicateTitle reports a unique-index violation on insert or update the
// same way as the pre-check.
func duplicateTitle(err error) error {
	if apperr.HasCode(err, apperr.CodeConflict) {
		return errTitleTaken().WithCause(err)
	}
	return err
}

// rollback undoes a staged attachment. Rollback logs and counts its own
// failures; the caller returns its original error.
func (service *Service) rollback(context context.Context, attachment *image.Attachment) {
	_ = attachment.Rollback(context)
}
