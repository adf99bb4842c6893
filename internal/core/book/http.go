// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	"github.com/taibuivan/bookcatalog/internal/platform/middleware"
	"github.com/taibuivan/bookcatalog/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for the book catalog.
type Handler struct {
	service      *Service
	maxFileBytes int64
}

// NewHandler constructs a new book [Handler]. maxFileBytes caps each uploaded image.
func NewHandler(service *Service, maxFileBytes int64) *Handler {
	return &Handler{service: service, maxFileBytes: maxFileBytes}
}

// maxBodyBytes caps a whole multipart request: every image plus form fields.
func (handler *Handler) maxBodyBytes() int64 {
	return int64(constants.MaxUploadFiles)*handler.maxFileBytes + 1<<20
}

/*
Routes returns a [chi.Router] with the book endpoints, mounted at /books.

  - Public: listing, lookups, rating statistics, the sales counter, the rating
    event hook and the scheduler's stock endpoint.
  - Admin: create, update, delete, restore and manual stock adjustment.
*/
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Endpoints
	router.Get("/", handler.listBooks)
	router.Get("/multiple", handler.getBooks)
	router.Get("/{id}", handler.getBook)
	router.Get("/{id}/stats", handler.ratingStats)

	router.Post("/{id}/update-rating", handler.updateRating)
	router.Put("/{id}/sales", handler.recordSale)
	router.Put("/{id}/stock/cron", handler.adjustStock)

	// ## Catalog Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createBook)
		admin.Put("/{id}", handler.updateBook)
		admin.Delete("/{id}", handler.deleteBook)
		admin.Put("/{id}/restore", handler.restoreBook)
		admin.Put("/{id}/stock", handler.adjustStock)
	})

	return router
}
