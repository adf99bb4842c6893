// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the named entities a book points at: authors,
categories and publishers.

All three share one lifecycle. Names are unique (compared after trimming), and
an entity can only be deleted while no book, active or soft-deleted, refers to
it. A [Kind] value carries what differs between them: table, label, name
length rules and the descriptive text columns.
*/
package reference

import (
	"time"

	"github.com/taibuivan/bookcatalog/internal/platform/database/schema"
)

// # Kinds

// Kind describes one reference registry.
type Kind struct {
	// Key is the singular JSON key ("author").
	Key string
	// Plural is the collection key and route segment ("authors").
	Plural string
	// Label is used in client-facing messages ("Author").
	Label string
	// Table describes the backing table.
	Table schema.CatalogReferenceTable
	// BookColumn is the catalog.book column referencing this kind.
	BookColumn string
	// MinName and MaxName bound the trimmed name length in runes; zero means unbounded.
	MinName, MaxName int
}

var (
	Author = Kind{
		Key: "author", Plural: "authors", Label: "Author",
		Table:      schema.CatalogAuthor,
		BookColumn: schema.CatalogBook.AuthorID,
		MinName:    2, MaxName: 100,
	}

	Category = Kind{
		Key: "category", Plural: "categories", Label: "Category",
		Table:      schema.CatalogCategory,
		BookColumn: schema.CatalogBook.CategoryID,
		MinName:    2, MaxName: 100,
	}

	Publisher = Kind{
		Key: "publisher", Plural: "publishers", Label: "Publisher",
		Table:      schema.CatalogPublisher,
		BookColumn: schema.CatalogBook.PublisherID,
	}
)

// # Entity

// Entity is a reference record. Only the descriptive fields of its kind are
// set; the others stay nil and are omitted from JSON.
type Entity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Biography   *string   `json:"biography,omitempty"`
	Description *string   `json:"description,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Contact     *string   `json:"contact,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// attribute returns the field backing a descriptive column.
func (entity *Entity) attribute(column string) **string {
	switch column {
	case "biography":
		return &entity.Biography
	case "description":
		return &entity.Description
	case "address":
		return &entity.Address
	case "contact":
		return &entity.Contact
	default:
		panic("reference: unknown attribute column " + column)
	}
}

// Input is the create/update payload shared by all kinds. Fields that do not
// belong to the target kind are ignored.
type Input struct {
	Name        *string `json:"name"`
	Biography   *string `json:"biography"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Contact     *string `json:"contact"`
}

// value returns the supplied value for a descriptive column.
func (input Input) value(column string) *string {
	switch column {
	case "biography":
		return input.Biography
	case "description":
		return input.Description
	case "address":
		return input.Address
	case "contact":
		return input.Contact
	}
	return nil
}

// Filter narrows a listing.
type Filter struct {
	// IDs restricts the listing to these entities when non-empty.
	IDs []string
}

// Field names for validation
const (
	FieldName = "name"
	FieldIDs  = "ids"
)
