// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book is the catalog engine: book records, their listing and search,
stock and sales counters, image attachment and the cached rating summary.

# Lifecycle

A book is either active or deleted. Deletion is soft; the record, its title
and its references stay in place. The allowed moves are kept in one
transition table ([Status.CanTransitionTo]).

# Derived Fields

titleNoAccent and availability are never taken from input. Every write path
runs [Normalize] before persisting.
*/
package book

import (
	"slices"
	"time"

	"github.com/taibuivan/bookcatalog/internal/core/image"
	"github.com/taibuivan/bookcatalog/internal/core/reference"
)

// # Status

// Status is the lifecycle state of a book.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// transitions lists, per state, the states a book may move to.
var transitions = map[Status][]Status{
	StatusActive:  {StatusDeleted},
	StatusDeleted: {StatusDeleted, StatusActive},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a book in state s may move to next.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// sourcesOf returns every state allowed to move to target, in a stable order.
func sourcesOf(target Status) []Status {
	var sources []Status
	for _, from := range []Status{StatusActive, StatusDeleted} {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// # Entity

// Book is a catalog record in its read-expanded form: references and images
// are resolved to their records.
type Book struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	TitleNoAccent string  `json:"titleNoAccent"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`

	Images    []*image.Image    `json:"images"`
	Category  *reference.Entity `json:"category"`
	Publisher *reference.Entity `json:"publisher"`
	Author    *reference.Entity `json:"author"`

	ImageIDs    []string `json:"-"`
	CategoryID  string   `json:"-"`
	PublisherID string   `json:"-"`
	AuthorID    string   `json:"-"`

	Availability bool   `json:"availability"`
	StockCount   int    `json:"stockCount"`
	SalesCount   int    `json:"salesCount"`
	Status       Status `json:"status"`

	RatingSummary

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Detail is a book enriched with the live rating from the review service.
type Detail struct {
	*Book
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

// # Input

// Input carries the fields of a create or update request. Nil means the field
// was not supplied. Availability is deliberately absent.
type Input struct {
	Title       *string
	Description *string
	Price       *float64
	CategoryID  *string
	PublisherID *string
	AuthorID    *string
	StockCount  *int

	// KeepExistingImages applies to updates only.
	KeepExistingImages bool

	// Images are the uploaded files, in upload order.
	Images []image.File
}

// Changes is a partial update of a book row. Nil fields are left untouched.
type Changes struct {
	Title       *string
	Description *string
	Price       *float64
	CategoryID  *string
	PublisherID *string
	AuthorID    *string
	StockCount  *int
	ImageIDs    []string

	titleNoAccent *string
	availability  *bool
}

// TitleNoAccent returns the derived search key set by normalization.
func (changes Changes) TitleNoAccent() *string { return changes.titleNoAccent }

// Availability returns the derived availability set by normalization.
func (changes Changes) Availability() *bool { return changes.availability }

// # Request Fields

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldPublisher   = "publisher"
	FieldAuthor      = "author"
	FieldStockCount  = "stockCount"
	FieldKeepImages  = "keepExistingImages"
	FieldQuantity    = "quantity"
	FieldReviewID    = "reviewId"
	FieldRating      = "rating"
	FieldAction      = "action"
)
