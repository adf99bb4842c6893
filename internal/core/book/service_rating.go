// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
)

/*
ApplyRatingEvent folds one review change into the cached rating of a book.

Description: For an update the review's earlier rating is fetched from the
review service; an unknown review leaves the summary as it is. The three
rating fields are written together, and the cached live rating of the book
is dropped.

Parameters:
  - context: context.Context
  - bookID: string
  - input: RatingInput (reviewId, rating 1..5, action add|update|remove)

Returns:
  - *RatedBook: id, title and the new summary
  - error: ValidationError, NotFound, ServiceUnavailable when the previous
    rating cannot be fetched
*/
func (service *Service) ApplyRatingEvent(context context.Context, bookID string, input RatingInput) (*RatedBook, error) {
	input.ReviewID = strings.TrimSpace(input.ReviewID)

	// ── 1. Validate ──
	validator := &validate.Validator{}
	validator.Required(FieldReviewID, input.ReviewID)
	if input.Rating == nil {
		validator.Custom(FieldRating, true, "This field is required")
	} else {
		if wholeNumber(*input.Rating) {
			validator.Range(FieldRating, int(*input.Rating), MinStars, MaxStars)
		} else {
			validator.Custom(FieldRating, true, "Rating must be an integer between 1 and 5")
		}
	}
	validator.OneOf(FieldAction, input.Action, string(ActionAdd), string(ActionUpdate), string(ActionRemove))
	if err := validator.Err(); err != nil {
		return nil, err
	}

	action := Action(input.Action)
	rating := int(*input.Rating)

	book, err := service.repo.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}

	// ── 2. Resolve the previous rating ──
	var previous *int
	if action == ActionUpdate {
		stars, found, err := service.reviews.PreviousRating(context, input.ReviewID)
		if err != nil {
			return nil, apperr.ServiceUnavailable("Review service is unavailable").WithCause(err)
		}
		if found {
			previous = &stars
		}
	}

	// ── 3. Apply and persist ──
	summary := book.RatingSummary.Apply(action, rating, previous)
	if err := service.repo.SaveRating(context, bookID, summary); err != nil {
		return nil, err
	}

	service.ratings.Forget(context, bookID)
	metrics.RatingEventsTotal.WithLabelValues(string(action)).Inc()

	ctxutil.GetLogger(context).InfoContext(context, "book_rating_updated",
		slog.String("book_id", bookID),
		slog.String("review_id", input.ReviewID),
		slog.String("action", string(action)),
		slog.Float64("average_rating", summary.AverageRating),
		slog.Int("total_reviews", summary.TotalReviews),
	)

	return &RatedBook{ID: book.ID, Title: book.Title, RatingSummary: summary}, nil
}

// RatingStats returns the cached rating summary of a book of any status.
func (service *Service) RatingStats(context context.Context, bookID string) (*RatingStats, error) {
	book, err := service.repo.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}
	return &RatingStats{BookID: book.ID, Title: book.Title, RatingSummary: book.RatingSummary}, nil
}
