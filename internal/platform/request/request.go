// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/constants"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/sec"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID retrieves a named URL parameter and checks that it is a well-formed UUID.

Returns:
  - string: The identifier
  - error: apperr.ValidationError naming the parameter when malformed
*/
func ID(request *http.Request, name string) (string, error) {
	id := chi.URLParam(request, name)
	if !validate.IsUUID(id) {
		return "", validate.FieldError(name, fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredUserID returns the id of the authenticated caller, as issued by the
identity service. The id is opaque; it is not required to be a UUID.

Returns:
  - string: User id
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (string, error) {
	claims := Claims(request)
	if claims == nil {
		return "", apperr.Unauthorized("Authentication required")
	}
	return claims.UserID, nil
}

// # Multipart Uploads

/*
ParseMultipart parses a multipart/form-data body, capping the whole body at
maxBodyBytes. Requests with any other content type are left untouched so that
callers can read form values uniformly with [http.Request.FormValue].
*/
func ParseMultipart(writer http.ResponseWriter, request *http.Request, maxBodyBytes int64) error {
	if !strings.HasPrefix(request.Header.Get("Content-Type"), "multipart/form-data") {
		return nil
	}

	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := request.ParseMultipartForm(constants.UploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return validate.FieldError(constants.UploadField, "Upload is too large")
		}
		return apperr.ValidationError("Invalid multipart form").WithCause(err)
	}
	return nil
}

/*
Files returns the uploaded parts of field after [ParseMultipart].

Returns:
  - []*multipart.FileHeader: At most maxFiles image parts, each within maxFileBytes
  - error: apperr.ValidationError when a limit is exceeded or a part is not an image
*/
func Files(request *http.Request, field string, maxFiles int, maxFileBytes int64) ([]*multipart.FileHeader, error) {
	if request.MultipartForm == nil {
		return nil, nil
	}

	headers := request.MultipartForm.File[field]
	if len(headers) > maxFiles {
		return nil, validate.FieldError(field, fmt.Sprintf("At most %d files are allowed", maxFiles))
	}

	for _, header := range headers {
		if header.Size > maxFileBytes {
			return nil, validate.FieldError(field, fmt.Sprintf("File %s exceeds the size limit", header.Filename))
		}
		if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
			return nil, validate.FieldError(field, fmt.Sprintf("File %s is not an image", header.Filename))
		}
	}

	return headers, nil
}
