// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"net/http"

	requestutil "github.com/taibuivan/bookcatalog/internal/platform/request"
	"github.com/taibuivan/bookcatalog/internal/platform/respond"
)

// # Rating Endpoints

/*
POST /api/books/{id}/update-rating.

Description: Called by the review service after a review is added, changed
or removed.

Request:
  - reviewId: string
  - rating: integer 1..5
  - action: add | update | remove

Response:
  - 200: {book: {id, title, averageRating, totalReviews, ratingDistribution}}
*/
func (handler *Handler) updateRating(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input RatingInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.ApplyRatingEvent(request.Context(), bookID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book rating updated successfully", map[string]any{"book": book})
}

// GET /api/books/{id}/stats
func (handler *Handler) ratingStats(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.RatingStats(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Rating statistics retrieved successfully", map[string]any{"ratingStats": stats})
}
