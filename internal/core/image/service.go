// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package image

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/metrics"
	"github.com/taibuivan/bookcatalog/internal/platform/storage"
	"github.com/taibuivan/bookcatalog/pkg/slice"
	"github.com/taibuivan/bookcatalog/pkg/uuid"
)

// # Service Layer

// Service coordinates image files and image records.
type Service struct {
	repo  Repository
	store storage.Store
}

// NewService constructs a new image [Service].
func NewService(repo Repository, store storage.Store) *Service {
	return &Service{repo: repo, store: store}
}

/*
Stage writes every file to storage and returns the pending [Attachment].

Description: No record is written yet. If one file cannot be stored, the files
already written are removed before the error is returned.

Parameters:
  - ctx: context.Context
  - files: []File (may be empty)
  - createdBy: string (user id; empty when unknown)

Returns:
  - *Attachment: The staged images, in upload order
  - error: InternalFailure when storage rejects a file
*/
func (service *Service) Stage(ctx context.Context, files []File, createdBy string) (*Attachment, error) {
	attachment := &Attachment{service: service}

	var creator *string
	if createdBy != "" {
		creator = &createdBy
	}

	for _, file := range files {
		stored, err := service.store.Save(ctx, file.Filename, file.ContentType, file.Body)
		if err != nil {
			_ = attachment.Rollback(ctx)
			return nil, apperr.Internal(fmt.Errorf("image: failed to store %q: %w", file.Filename, err))
		}

		attachment.images = append(attachment.images, &Image{
			ID:        uuid.New(),
			Filename:  path.Base(stored),
			Path:      stored,
			CreatedBy: creator,
		})
	}

	return attachment, nil
}

/*
Remove deletes the files and records of the images with the given ids.

Description: Every file deletion is attempted even after one fails. Files that
are already gone count as deleted. If any deletion failed, the records are kept
so the paths stay known, and the failures come back as one InternalFailure.
*/
func (service *Service) Remove(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	images, err := service.repo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}

	if failures := service.deleteFiles(ctx, images); len(failures) > 0 {
		return apperr.Internal(errors.Join(failures...))
	}

	return service.repo.DeleteByIDs(ctx, ids)
}

// deleteFiles removes each file, logging and counting the ones that fail.
func (service *Service) deleteFiles(ctx context.Context, images []*Image) []error {
	var failures []error
	for _, image := range images {
		if err := service.store.Delete(ctx, image.Path); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "image_cleanup_failed",
				slog.String("image_id", image.ID),
				slog.String("path", image.Path),
				slog.Any("error", err),
			)
			failures = append(failures, fmt.Errorf("image: delete %s: %w", image.Path, err))
		}
	}

	if len(failures) > 0 {
		metrics.ImageCleanupFailures.Add(float64(len(failures)))
	}
	return failures
}

// # Attachment

// Attachment is a set of stored images that may or may not have records yet.
type Attachment struct {
	service   *Service
	images    []*Image
	committed bool
}

// Images returns the staged images in upload order.
func (attachment *Attachment) Images() []*Image {
	if attachment == nil {
		return nil
	}
	return attachment.images
}

// IDs returns the ids of the staged images in upload order.
func (attachment *Attachment) IDs() []string {
	return slice.Map(attachment.Images(), func(image *Image) string { return image.ID })
}

// Commit inserts the image records. Calling it again after success is a no-op.
func (attachment *Attachment) Commit(ctx context.Context) error {
	if attachment.committed || len(attachment.images) == 0 {
		return nil
	}

	if err := attachment.service.repo.CreateMany(ctx, attachment.images); err != nil {
		return err
	}

	attachment.committed = true
	return nil
}

/*
Rollback removes the staged files and, once committed, their records.

Description: It runs detached from ctx cancellation because it usually follows
a failed request. Failures are logged and returned joined; the caller reports
its own error, not this one. After Rollback the attachment is empty.
*/
func (attachment *Attachment) Rollback(ctx context.Context) error {
	if attachment == nil || len(attachment.images) == 0 {
		return nil
	}

	ctx = context.WithoutCancel(ctx)
	failures := attachment.service.deleteFiles(ctx, attachment.images)

	if attachment.committed {
		if err := attachment.service.repo.DeleteByIDs(ctx, attachment.IDs()); err != nil {
			ctxutil.GetLogger(ctx).WarnContext(ctx, "image_cleanup_failed",
				slog.Any("image_ids", attachment.IDs()),
				slog.Any("error", err),
			)
			metrics.ImageCleanupFailures.Inc()
			failures = append(failures, err)
		}
	}

	attachment.images = nil
	attachment.committed = false

	return errors.Join(failures...)
}
