// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
)

// maxQuantity bounds stock and sales quantities to what the integer columns hold.
const maxQuantity = math.MaxInt32

// QuantityInput is the body of the stock and sales endpoints.
type QuantityInput struct {
	Quantity *float64 `json:"quantity"`
}

// wholeNumber reports whether value is a finite integer within maxQuantity.
func wholeNumber(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0) &&
		value == math.Trunc(value) && math.Abs(value) <= maxQuantity
}

/*
AdjustStock adds a signed quantity to the stock of a book of any status.

Description: Availability is re-derived in the same write. The read and the
write are separate statements, so concurrent adjustments may overwrite each
other.

Returns:
  - *Book: The updated book
  - error: ValidationError when quantity is missing, fractional or would make
    the stock negative; NotFound when the book is absent
*/
func (service *Service) AdjustStock(context context.Context, id string, input QuantityInput) (*Book, error) {
	if input.Quantity == nil || !wholeNumber(*input.Quantity) {
		return nil, validate.FieldError(FieldQuantity, "Stock quantity must be an integer")
	}
	delta := int(*input.Quantity)

	book, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	stock := book.StockCount + delta
	if stock < 0 {
		return nil, validate.FieldError(FieldQuantity, fmt.Sprintf(
			"Stock cannot be negative. Current: %d, Requested decrease: %d", book.StockCount, -delta))
	}
	if stock > maxQuantity {
		return nil, validate.FieldError(FieldQuantity, "Stock quantity is too large")
	}

	changes := Changes{StockCount: &stock}
	changes.normalize()

	if err := service.repo.Update(context, id, changes); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "book_stock_adjusted",
		slog.String("id", id), slog.Int("delta", delta), slog.Int("stock", stock))

	return service.repo.FindByID(context, id)
}

/*
RecordSale adds a positive quantity to the sales counter.

Description: The increment happens in a single statement, so concurrent sales
are never lost. Stock is not touched.
*/
func (service *Service) RecordSale(context context.Context, id string, input QuantityInput) (*Book, error) {
	if input.Quantity == nil || !wholeNumber(*input.Quantity) || *input.Quantity <= 0 {
		return nil, validate.FieldError(FieldQuantity, "Sales quantity must be a positive integer")
	}
	quantity := int(*input.Quantity)

	if err := service.repo.IncrementSales(context, id, quantity); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "book_sale_recorded",
		slog.String("id", id), slog.Int("quantity", quantity))

	return service.repo.FindByID(context, id)
}
