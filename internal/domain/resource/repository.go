package resource

import "context"

// Definition describes how a table is searched, sorted and preloaded.
type Definition struct {
	// Entity is the snake_case name used in error codes.
	Entity string

	SearchColumns []string
	// SearchClause replaces SearchColumns when set; it receives the lowered
	// "%term%" pattern once per placeholder.
	SearchClause string

	Sortable      []string
	DefaultSortBy string
	DefaultSort   string

	Preloads []string

	// ReadOnlyColumns are never written by Update; another writer owns them.
	ReadOnlyColumns []string
}

// SortColumn returns sortBy when whitelisted and the default otherwise.
func (d Definition) SortColumn(sortBy string) string {
	for _, col := range d.Sortable {
		if col == sortBy {
			return col
		}
	}
	if d.DefaultSortBy != "" {
		return d.DefaultSortBy
	}
	return "created_at"
}

func (d Definition) SortDirection(sort string) string {
	if sort != "" {
		return sort
	}
	if d.DefaultSort != "" {
		return d.DefaultSort
	}
	return "desc"
}

type Repository[T any] interface {
	Definition() Definition

	List(
		ctx context.Context,
		q ListQuery,
	) ([]T, int64, error)

	Get(
		ctx context.Context,
		id string,
	) (*T, error)

	Create(
		ctx context.Context,
		entity *T,
	) error

	Update(
		ctx context.Context,
		entity *T,
	) error

	Delete(
		ctx context.Context,
		id string,
	) error

	// Exists counts rows matching an arbitrary clause.
	Exists(
		ctx context.Context,
		clause string,
		args ...any,
	) (bool, error)
}
