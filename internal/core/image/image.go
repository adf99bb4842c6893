// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package image keeps the records that point at uploaded book images.

Attaching images to a book is a two-phase action. [Service.Stage] writes the
bytes through a [storage.Store]; [Attachment.Commit] inserts the records. When
the surrounding book write fails, [Attachment.Rollback] removes whatever the
two phases produced.
*/
package image

import (
	"io"
	"time"
)

// # Entity

// Image is the record of one stored image file.
type Image struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	CreatedBy *string   `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// File is one uploaded image as handed over by the HTTP layer.
type File struct {
	Filename    string
	ContentType string
	Body        io.Reader
}
