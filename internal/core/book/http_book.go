// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/bookcatalog/internal/core/image"
	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	requestutil "github.com/taibuivan/bookcatalog/internal/platform/request"
	"github.com/taibuivan/bookcatalog/internal/platform/respond"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
	"github.com/taibuivan/bookcatalog/pkg/pagination"
	"github.com/taibuivan/bookcatalog/pkg/pointer"
	"github.com/taibuivan/bookcatalog/pkg/query"
)

// # Book Endpoints

/*
GET /api/books.

Request:
  - q, category, author, publisher, available, minPrice, maxPrice, status, sort
    (see [ParseFilter])
  - page, limit: pagination (limit defaults to 12)

Response:
  - 200: {books, pagination}
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	filter, err := ParseFilter(request.URL.Query())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	params := pagination.FromRequest(request, constants.DefaultBookPageSize)

	books, total, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, "Books retrieved successfully", "books", books, pagination.NewMeta(params, total))
}

// GET /api/books/multiple?ids=a,b,c
func (handler *Handler) getBooks(writer http.ResponseWriter, request *http.Request) {
	books, err := handler.service.GetMany(request.Context(), query.StringSlice(request.URL.Query().Get("ids")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Books retrieved successfully", map[string]any{"books": books})
}

// GET /api/books/{id}
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book retrieved successfully", map[string]any{"book": book})
}

/*
POST /api/books.

Request (multipart/form-data):
  - title, description, price, category, publisher, author, stockCount
  - images: 1..5 image files

Response:
  - 201: {book}
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	createdBy, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, release, err := handler.readInput(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer release()

	book, err := handler.service.Create(request.Context(), input, createdBy)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "Book created successfully", map[string]any{"book": book})
}

/*
PUT /api/books/{id}.

Request (multipart/form-data): any create field, plus keepExistingImages=true
to append uploads to the current images instead of replacing them.
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	createdBy, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	input, release, err := handler.readInput(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer release()

	book, err := handler.service.Update(request.Context(), id, input, createdBy)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book updated successfully", map[string]any{"book": book})
}

// DELETE /api/books/{id}
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Delete(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book soft-deleted successfully", map[string]any{"book": book})
}

// PUT /api/books/{id}/restore
func (handler *Handler) restoreBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.Restore(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book restored successfully", map[string]any{"book": book})
}

// # Counters

/*
PUT /api/books/{id}/stock and PUT /api/books/{id}/stock/cron.

Request:
  - quantity: signed integer added to the stock
*/
func (handler *Handler) adjustStock(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input QuantityInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.AdjustStock(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book stock updated successfully", map[string]any{"book": book})
}

/*
PUT /api/books/{id}/sales.

Request:
  - quantity: positive integer added to the sales count
*/
func (handler *Handler) recordSale(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input QuantityInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.RecordSale(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Book sales count updated successfully", map[string]any{"book": book})
}

// # Form Decoding

// readInput decodes a create or update form. release closes the opened upload
// parts and must be called once the request is done.
func (handler *Handler) readInput(writer http.ResponseWriter, request *http.Request) (Input, func(), error) {
	noop := func() {}

	if err := requestutil.ParseMultipart(writer, request, handler.maxBodyBytes()); err != nil {
		return Input{}, noop, err
	}
	if request.MultipartForm == nil {
		if err := request.ParseForm(); err != nil {
			return Input{}, noop, apperr.ValidationError("Invalid form body").WithCause(err)
		}
	}
	form := request.PostForm

	input := Input{
		Title:              formValue(form, FieldTitle),
		Description:        formValue(form, FieldDescription),
		CategoryID:         pointer.Trim(formValue(form, FieldCategory)),
		PublisherID:        pointer.Trim(formValue(form, FieldPublisher)),
		AuthorID:           pointer.Trim(formValue(form, FieldAuthor)),
		KeepExistingImages: strings.EqualFold(strings.TrimSpace(form.Get(FieldKeepImages)), "true"),
	}

	if raw := formValue(form, FieldPrice); raw != nil {
		price, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
		if err != nil {
			return Input{}, noop, validate.FieldError(FieldPrice, "Price must be a number")
		}
		input.Price = &price
	}

	if raw := formValue(form, FieldStockCount); raw != nil {
		stock, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			return Input{}, noop, validate.FieldError(FieldStockCount, "Stock count must be an integer")
		}
		input.StockCount = &stock
	}

	headers, err := requestutil.Files(request, constants.UploadField, constants.MaxUploadFiles, handler.maxFileBytes)
	if err != nil {
		return Input{}, noop, err
	}

	files, release, err := openFiles(headers)
	if err != nil {
		return Input{}, noop, err
	}
	input.Images = files

	return input, release, nil
}

// formValue returns the first value of key, or nil when the key is absent.
func formValue(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

// openFiles opens every upload part in order.
func openFiles(headers []*multipart.FileHeader) ([]image.File, func(), error) {
	var opened []multipart.File
	release := func() {
		for _, file := range opened {
			_ = file.Close()
		}
	}

	files := make([]image.File, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			release()
			return nil, func() {}, apperr.ValidationError("Uploaded file cannot be read").WithCause(err)
		}
		opened = append(opened, file)

		files = append(files, image.File{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	return files, release, nil
}
