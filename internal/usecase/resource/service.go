package resource

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/med-directory/internal/domain/resource"
	"github.com/BruksfildServices01/med-directory/internal/httperr"
)

// NaturalKey returns the WHERE clause identifying rows that would duplicate
// entity. ok=false skips the check (e.g. optional columns left empty).
type NaturalKey[T any] func(entity *T) (clause string, args []any, ok bool)

// Validator checks cross-table references before a write.
type Validator[T any] func(ctx context.Context, entity *T) error

type Option[T any] func(*Service[T])

// WithNaturalKey rejects writes that collide with an existing row. The kind
// decides whether a collision is a Conflict or a BadRequest.
func WithNaturalKey[T any](key NaturalKey[T], kind httperr.Kind) Option[T] {
	return func(s *Service[T]) {
		s.naturalKey = key
		s.duplicateKind = kind
	}
}

func WithValidator[T any](v Validator[T]) Option[T] {
	return func(s *Service[T]) {
		s.validate = v
	}
}

// Service implements create/list/get/update/delete over any Repository.
type Service[T any] struct {
	repo          domain.Repository[T]
	naturalKey    NaturalKey[T]
	duplicateKind httperr.Kind
	validate      Validator[T]
}

func NewService[T any](repo domain.Repository[T], opts ...Option[T]) *Service[T] {
	s := &Service[T]{repo: repo, duplicateKind: httperr.KindConflict}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service[T]) entity() string {
	return s.repo.Definition().Entity
}

func (s *Service[T]) failure(op string) httperr.BusinessError {
	e := s.entity()
	return httperr.BusinessError{
		Kind:    httperr.KindBadRequest,
		Code:    fmt.Sprintf("%s_%s_failed", e, op),
		Message: fmt.Sprintf("Failed to %s %s", op, strings.ReplaceAll(e, "_", " ")),
	}
}

func (s *Service[T]) checkDuplicate(
	ctx context.Context,
	entity *T,
	excludeID string,
) error {

	if s.naturalKey == nil {
		return nil
	}

	clause, args, ok := s.naturalKey(entity)
	if !ok {
		return nil
	}
	if excludeID != "" {
		clause = "(" + clause + ") AND id <> ?"
		args = append(args, excludeID)
	}

	exists, err := s.repo.Exists(ctx, clause, args...)
	if err != nil {
		return err
	}
	if exists {
		e := s.entity()
		return httperr.BusinessError{
			Kind:    s.duplicateKind,
			Code:    e + "_exists",
			Message: strings.ReplaceAll(e, "_", " ") + " already exists",
		}
	}
	return nil
}

func (s *Service[T]) Create(ctx context.Context, entity *T) (*T, error) {
	if s.validate != nil {
		if err := s.validate(ctx, entity); err != nil {
			return nil, httperr.Wrap(err, s.failure("create"))
		}
	}

	if err := s.checkDuplicate(ctx, entity, ""); err != nil {
		return nil, httperr.Wrap(err, s.failure("create"))
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		return nil, httperr.Wrap(err, s.failure("create"))
	}

	return entity, nil
}

func (s *Service[T]) List(ctx context.Context, q domain.ListQuery) (domain.Page[T], error) {
	q.Normalize()

	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return domain.Page[T]{}, httperr.Wrap(err, s.failure("list"))
	}

	return domain.NewPage(items, total, q), nil
}

func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, httperr.Wrap(err, s.failure("get"))
	}
	return entity, nil
}

// Update loads the row, applies patch and writes it back.
func (s *Service[T]) Update(
	ctx context.Context,
	id string,
	patch func(*T),
) (*T, error) {

	entity, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, httperr.Wrap(err, s.failure("update"))
	}

	patch(entity)

	if s.validate != nil {
		if err := s.validate(ctx, entity); err != nil {
			return nil, httperr.Wrap(err, s.failure("update"))
		}
	}

	if err := s.checkDuplicate(ctx, entity, id); err != nil {
		return nil, httperr.Wrap(err, s.failure("update"))
	}

	if err := s.repo.Update(ctx, entity); err != nil {
		return nil, httperr.Wrap(err, s.failure("update"))
	}

	return s.Get(ctx, id)
}

func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return httperr.Wrap(err, s.failure("delete"))
	}
	return nil
}
