// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/bookcatalog/internal/platform/apperr"
	"github.com/taibuivan/bookcatalog/internal/platform/ctxutil"
	"github.com/taibuivan/bookcatalog/internal/platform/validate"
	"github.com/taibuivan/bookcatalog/pkg/pagination"
	"github.com/taibuivan/bookcatalog/pkg/pointer"
	"github.com/taibuivan/bookcatalog/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the reference registries.
type Service struct {
	repo Repository
}

// NewService constructs a new reference [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

/*
List returns a page of entities of kind.

Parameters:
  - context: context.Context
  - kind: Kind
  - filter: Filter (every id must be a well-formed UUID)
  - params: pagination.Params

Returns:
  - []*Entity: The page
  - int: Total matching entities
  - error: ValidationError on a malformed id
*/
func (service *Service) List(context context.Context, kind Kind, filter Filter, params pagination.Params) ([]*Entity, int, error) {
	for _, id := range filter.IDs {
		if !validate.IsUUID(id) {
			return nil, 0, validate.FieldError(FieldIDs, fmt.Sprintf("Invalid %s id: %s", kind.Key, id))
		}
	}
	return service.repo.List(context, kind, filter, params.Limit, params.Offset())
}

// Get returns a single entity or NotFound.
func (service *Service) Get(context context.Context, kind Kind, id string) (*Entity, error) {
	return service.repo.FindByID(context, kind, id)
}

/*
Exists reports whether an entity of kind with id exists.

Used by the book service before it writes a reference.
*/
func (service *Service) Exists(context context.Context, kind Kind, id string) (bool, error) {
	_, err := service.repo.FindByID(context, kind, id)
	if apperr.IsNotFound(err) {
		return false, nil
	}
	return err == nil, err
}

/*
Create adds a new entity.

Parameters:
  - context: context.Context
  - kind: Kind
  - input: Input (name required)

Returns:
  - *Entity: The stored entity
  - error: ValidationError on a bad name, Conflict on a duplicate name
*/
func (service *Service) Create(context context.Context, kind Kind, input Input) (*Entity, error) {
	name := strings.TrimSpace(pointer.Val(input.Name))
	if err := validateName(kind, name); err != nil {
		return nil, err
	}

	if err := service.ensureNameFree(context, kind, name, ""); err != nil {
		return nil, err
	}

	entity := &Entity{ID: uuid.New(), Name: name}
	for _, column := range kind.Table.Attributes {
		*entity.attribute(column) = pointer.To(strings.TrimSpace(pointer.Val(input.value(column))))
	}

	if err := service.repo.Create(context, kind, entity); err != nil {
		return nil, duplicate(kind, err)
	}

	ctxutil.GetLogger(context).InfoContext(context, kind.Key+"_created",
		slog.String("id", entity.ID), slog.String("name", entity.Name))
	return entity, nil
}

/*
Update applies the supplied fields to an existing entity.

Description: A supplied name is validated and re-checked for uniqueness
against every other entity of the kind. Omitted fields keep their values.
*/
func (service *Service) Update(context context.Context, kind Kind, id string, input Input) (*Entity, error) {
	entity, err := service.repo.FindByID(context, kind, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := validateName(kind, name); err != nil {
			return nil, err
		}
		if err := service.ensureNameFree(context, kind, name, id); err != nil {
			return nil, err
		}
		entity.Name = name
	}

	for _, column := range kind.Table.Attributes {
		if value := pointer.Trim(input.value(column)); value != nil {
			*entity.attribute(column) = value
		}
	}

	if err := service.repo.Update(context, kind, entity); err != nil {
		return nil, duplicate(kind, err)
	}

	ctxutil.GetLogger(context).InfoContext(context, kind.Key+"_updated", slog.String("id", id))
	return entity, nil
}

/*
Delete removes an entity that no book refers to.

Description: Books of every status count as referrers, so an entity used only
by soft-deleted books is still protected. The guard runs before the existence
check.

Returns:
  - *Entity: The deleted entity
  - error: Conflict while referenced, NotFound if absent
*/
func (service *Service) Delete(context context.Context, kind Kind, id string) (*Entity, error) {
	count, err := service.repo.CountBooks(context, kind, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, inUse(kind)
	}

	entity, err := service.repo.Delete(context, kind, id)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).WarnContext(context, kind.Key+"_deleted", slog.String("id", id))
	return entity, nil
}

// # Helpers

func validateName(kind Kind, name string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, name)
	if name != "" && kind.MinName > 0 {
		validator.MinLen(FieldName, name, kind.MinName)
	}
	if kind.MaxName > 0 {
		validator.MaxLen(FieldName, name, kind.MaxName)
	}
	return validator.Err()
}

func (service *Service) ensureNameFree(context context.Context, kind Kind, name, excludeID string) error {
	taken, err := service.repo.NameTaken(context, kind, name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict(kind.Label + " name already exists")
	}
	return nil
}

// duplicate turns a unique-index violation raced past the pre-check into the
// same conflict the pre-check reports.
func duplicate(kind Kind, err error) error {
	if apperr.HasCode(err, apperr.CodeConflict) {
		return apperr.Conflict(kind.Label + " name already exists").WithCause(err)
	}
	return err
}

func inUse(kind Kind) *apperr.AppError {
	return apperr.Conflict(fmt.Sprintf("%s is referenced by one or more books and cannot be deleted", kind.Label))
}
