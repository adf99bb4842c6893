// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	"github.com/taibuivan/bookcatalog/internal/platform/middleware"
	requestutil "github.com/taibuivan/bookcatalog/internal/platform/request"
	"github.com/taibuivan/bookcatalog/internal/platform/respond"
	"github.com/taibuivan/bookcatalog/internal/platform/sec"
	"github.com/taibuivan/bookcatalog/pkg/pagination"
	"github.com/taibuivan/bookcatalog/pkg/query"
)

// Handler implements the HTTP layer for the reference registries.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes returns the router of one registry, mounted at /{kind.Plural}.

  - Public: list and fetch.
  - Admin: create, update and delete.
*/
func (handler *Handler) Routes(kind Kind) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list(kind))
	router.Get("/{id}", handler.get(kind))

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.create(kind))
		admin.Put("/{id}", handler.update(kind))
		admin.Delete("/{id}", handler.delete(kind))
	})

	return router
}

/*
GET /api/{kind}

Query:
  - ids: comma-separated id restriction
  - page, limit: pagination (limit defaults to 10)
*/
func (handler *Handler) list(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		params := pagination.FromRequest(request, constants.DefaultReferencePageSize)
		filter := Filter{IDs: query.StringSlice(request.URL.Query().Get("ids"))}

		entities, total, err := handler.service.List(request.Context(), kind, filter, params)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Paginated(writer, kind.Label+" list retrieved successfully", kind.Plural, entities, pagination.NewMeta(params, total))
	}
}

// GET /api/{kind}/{id}
func (handler *Handler) get(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity, err := handler.service.Get(request.Context(), kind, id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, kind.Label+" retrieved successfully", map[string]any{kind.Key: entity})
	}
}

// POST /api/{kind}
func (handler *Handler) create(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input Input
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity, err := handler.service.Create(request.Context(), kind, input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Created(writer, kind.Label+" created successfully", map[string]any{kind.Key: entity})
	}
}

// PUT /api/{kind}/{id}
func (handler *Handler) update(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input Input
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity, err := handler.service.Update(request.Context(), kind, id, input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, kind.Label+" updated successfully", map[string]any{kind.Key: entity})
	}
}

// DELETE /api/{kind}/{id}
func (handler *Handler) delete(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.ID(request, "id")
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity, err := handler.service.Delete(request.Context(), kind, id)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, kind.Label+" deleted successfully", map[string]any{kind.Key: entity})
	}
}
