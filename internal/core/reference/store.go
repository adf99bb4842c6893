// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract shared by all reference kinds.
type Repository interface {

	/*
		List returns one page of entities ordered by name, plus the total count.

		Parameters:
		  - context: context.Context
		  - kind: Kind (target registry)
		  - filter: Filter (optional id restriction)
		  - limit, offset: int

		Returns:
		  - []*Entity: The page
		  - int: Total matching entities
		  - error: Database retrieval failures
	*/
	List(context context.Context, kind Kind, filter Filter, limit, offset int) ([]*Entity, int, error)

	/*
		FindByID fetches a single entity.

		Returns:
		  - *Entity: The entity
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, kind Kind, id string) (*Entity, error)

	// NameTaken reports whether another entity of kind already uses name.
	// An empty excludeID checks all entities.
	NameTaken(context context.Context, kind Kind, name, excludeID string) (bool, error)

	// Create inserts entity and fills its timestamps.
	Create(context context.Context, kind Kind, entity *Entity) error

	// Update persists name and descriptive fields, refreshing UpdatedAt.
	Update(context context.Context, kind Kind, entity *Entity) error

	// Delete removes the entity and returns it; NotFound if missing.
	Delete(context context.Context, kind Kind, id string) (*Entity, error)

	// CountBooks counts books of any status that reference the entity.
	CountBooks(context context.Context, kind Kind, id string) (int, error)
}
