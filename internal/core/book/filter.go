// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/taibuivan/bookcatalog/internal/platform/database/schema"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
	"github.com/taibuivan/bookcatalog/pkg/query"
)

// # Listing Filter

// Filter selects and orders books for a listing.
type Filter struct {
	// Keyword matches the title, the author name or the publisher name
	// as a case-insensitive substring.
	Keyword string

	CategoryIDs  []string
	AuthorIDs    []string
	PublisherIDs []string

	Available *bool
	MinPrice  *float64
	MaxPrice  *float64

	// Status is the single status listed; there is no mode listing both.
	Status Status

	// SortField is a key of sortColumns.
	SortField string
	SortDesc  bool
}

// DefaultSort is used when the request names none.
const DefaultSort = "createdAt:desc"

// sortColumns whitelists the sortable fields and maps them to book columns.
var sortColumns = map[string]string{
	"createdAt":     schema.CatalogBook.CreatedAt,
	"updatedAt":     schema.CatalogBook.UpdatedAt,
	"title":         schema.CatalogBook.Title,
	"price":         schema.CatalogBook.Price,
	"stockCount":    schema.CatalogBook.StockCount,
	"salesCount":    schema.CatalogBook.SalesCount,
	"averageRating": schema.CatalogBook.AverageRating,
	"totalReviews":  schema.CatalogBook.TotalReviews,
}

/*
ParseFilter reads the listing query string.

Request:
  - q: keyword
  - category, author, publisher: comma-separated ids; one malformed id rejects the list
  - available: true | false
  - minPrice, maxPrice: non-negative numbers; an inverted range is swapped
  - status: active (default) | deleted
  - sort: field[:asc|desc], default createdAt:desc

Returns:
  - Filter: The validated filter
  - error: ValidationError naming the offending parameter
*/
func ParseFilter(values url.Values) (Filter, error) {
	filter := Filter{Keyword: strings.TrimSpace(values.Get("q"))}

	var err error
	if filter.CategoryIDs, err = parseIDs(FieldCategory, values.Get(FieldCategory)); err != nil {
		return Filter{}, err
	}
	if filter.AuthorIDs, err = parseIDs(FieldAuthor, values.Get(FieldAuthor)); err != nil {
		return Filter{}, err
	}
	if filter.PublisherIDs, err = parseIDs(FieldPublisher, values.Get(FieldPublisher)); err != nil {
		return Filter{}, err
	}

	available, ok := query.OptionalBool(values.Get("available"))
	if !ok {
		return Filter{}, validate.FieldError("available", "available must be true or false")
	}
	filter.Available = available

	if filter.MinPrice, err = parsePrice("minPrice", values.Get("minPrice")); err != nil {
		return Filter{}, err
	}
	if filter.MaxPrice, err = parsePrice("maxPrice", values.Get("maxPrice")); err != nil {
		return Filter{}, err
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		filter.MinPrice, filter.MaxPrice = filter.MaxPrice, filter.MinPrice
	}

	switch status := Status(strings.TrimSpace(values.Get("status"))); status {
	case "":
		filter.Status = StatusActive
	case StatusActive, StatusDeleted:
		filter.Status = status
	default:
		return Filter{}, validate.FieldError("status", "status must be active or deleted")
	}

	if filter.SortField, filter.SortDesc, err = parseSort(values.Get("sort")); err != nil {
		return Filter{}, err
	}

	return filter, nil
}

func parseIDs(field, raw string) ([]string, error) {
	ids := query.StringSlice(raw)
	for _, id := range ids {
		if !validate.IsUUID(id) {
			return nil, validate.FieldError(field, fmt.Sprintf("Invalid %s id: %s", field, id))
		}
	}
	return ids, nil
}

func parsePrice(field, raw string) (*float64, error) {
	price, ok := query.OptionalFloat(raw)
	if !ok || (price != nil && (*price < 0 || math.IsNaN(*price) || math.IsInf(*price, 0))) {
		return nil, validate.FieldError(field, field+" must be a non-negative number")
	}
	return price, nil
}

// parseSort accepts "field" or "field:asc|desc"; a bare field sorts ascending.
func parseSort(raw string) (string, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultSort
	}

	field, direction, _ := strings.Cut(raw, ":")
	if _, ok := sortColumns[field]; !ok {
		return "", false, validate.FieldError("sort", fmt.Sprintf("Cannot sort by %q", field))
	}

	switch strings.ToLower(direction) {
	case "", "asc":
		return field, false, nil
	case "desc":
		return field, true, nil
	default:
		return "", false, validate.FieldError("sort", fmt.Sprintf("Unknown sort direction %q", direction))
	}
}
