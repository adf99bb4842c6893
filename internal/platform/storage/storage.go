// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package storage keeps the bytes of uploaded images.
//
// # Backends
//
//   - [LocalStore] writes under a public static root served by the API itself.
//   - [S3Store] writes to an S3 bucket or any S3-compatible endpoint.
//
// Both return a relative path (or object key) that is stored on the image
// record, and both treat deleting an absent object as success.
package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/taibuivan/bookcatalog/pkg/uuid"
)

// Store persists and removes physical image objects.
type Store interface {
	// Save writes body and returns the stored path relative to the public root.
	Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error)

	// Delete removes the object at path. An absent object is not an error.
	Delete(ctx context.Context, path string) error
}

// objectName builds "<prefix>/<uuidv7><ext>" with forward slashes, keeping the
// lower-cased extension of the uploaded filename.
func objectName(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join(strings.Trim(prefix, "/"), uuid.New()+ext)
}
