package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/med-directory/internal/domain/resource"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
)

// GetOrNotFound loads a row by primary key or returns the entity's NotFound
// error.
func GetOrNotFound[T any](
	ctx context.Context,
	db *gorm.DB,
	entity string,
	id string,
	preloads ...string,
) (*T, error) {

	q := db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}

	var out T
	if err := q.Where("id = ?", id).First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.EntityNotFound(entity, id)
		}
		return nil, err
	}
	return &out, nil
}

type GormResource[T any] struct {
	db  *gorm.DB
	def resource.Definition
}

func NewGormResource[T any](db *gorm.DB, def resource.Definition) *GormResource[T] {
	return &GormResource[T]{db: db, def: def}
}

func (r *GormResource[T]) Definition() resource.Definition {
	return r.def
}

// --------------------------------------------------
// Query building
// --------------------------------------------------

func (r *GormResource[T]) scoped(
	ctx context.Context,
	q resource.ListQuery,
) *gorm.DB {

	tx := r.db.WithContext(ctx).Model(new(T))

	for _, f := range q.Filters {
		tx = tx.Where(f.Clause, f.Args...)
	}

	if q.Search != "" {
		if clauseSQL, args := searchClause(r.def, q.Search); clauseSQL != "" {
			tx = tx.Where(clauseSQL, args...)
		}
	}

	return tx
}

func searchClause(def resource.Definition, term string) (string, []any) {
	pattern := "%" + strings.ToLower(term) + "%"

	if def.SearchClause != "" {
		n := strings.Count(def.SearchClause, "?")
		args := make([]any, n)
		for i := range args {
			args[i] = pattern
		}
		return "(" + def.SearchClause + ")", args
	}

	if len(def.SearchColumns) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(def.SearchColumns))
	args := make([]any, 0, len(def.SearchColumns))
	for _, col := range def.SearchColumns {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", col))
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// --------------------------------------------------
// Repository
// --------------------------------------------------

func (r *GormResource[T]) List(
	ctx context.Context,
	q resource.ListQuery,
) ([]T, int64, error) {

	var total int64
	if err := r.scoped(ctx, q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := r.scoped(ctx, q)
	for _, p := range r.def.Preloads {
		tx = tx.Preload(p)
	}

	order := fmt.Sprintf("%s %s", r.def.SortColumn(q.SortBy), r.def.SortDirection(q.Sort))

	var items []T
	if err := tx.
		Order(order).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *GormResource[T]) Get(
	ctx context.Context,
	id string,
) (*T, error) {
	return GetOrNotFound[T](ctx, r.db, r.def.Entity, id, r.def.Preloads...)
}

func (r *GormResource[T]) Create(
	ctx context.Context,
	entity *T,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(entity).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict(r.def.Entity+"_exists", r.def.Entity+" already exists")
	}
	return err
}

func (r *GormResource[T]) Update(
	ctx context.Context,
	entity *T,
) error {
	omit := append([]string{clause.Associations}, r.def.ReadOnlyColumns...)

	err := r.db.WithContext(ctx).Omit(omit...).Save(entity).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrConflict(r.def.Entity+"_exists", r.def.Entity+" already exists")
	}
	return err
}

func (r *GormResource[T]) Delete(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.EntityNotFound(r.def.Entity, id)
	}
	return nil
}

func (r *GormResource[T]) Exists(
	ctx context.Context,
	clauseSQL string,
	args ...any,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(new(T)).
		Where(clauseSQL, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
