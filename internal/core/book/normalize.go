// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "github.com/taibuivan/bookcatalog/pkg/textfold"

// Derived holds the values computed from a book's title and stock.
type Derived struct {
	TitleNoAccent *string
	Availability  *bool
}

/*
Normalize computes the derived fields for whichever inputs are present.

A nil title leaves TitleNoAccent nil and a nil stock leaves Availability nil,
so partial updates only touch what they change.
*/
func Normalize(title *string, stockCount *int) Derived {
	var derived Derived

	if title != nil {
		folded := textfold.Fold(*title)
		derived.TitleNoAccent = &folded
	}

	if stockCount != nil {
		available := *stockCount > 0
		derived.Availability = &available
	}

	return derived
}

// normalize fills the derived fields of a complete book.
func (book *Book) normalize() {
	derived := Normalize(&book.Title, &book.StockCount)
	book.TitleNoAccent = *derived.TitleNoAccent
	book.Availability = *derived.Availability
}

// normalize fills the derived fields of a partial update.
func (changes *Changes) normalize() {
	derived := Normalize(changes.Title, changes.StockCount)
	changes.titleNoAccent = derived.TitleNoAccent
	changes.availability = derived.Availability
}
