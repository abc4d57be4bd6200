package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inventory-system/internal/repositories"
	"inventory-system/pkg/customvalidator"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	idMismatchMessage       = "ID в пути и в теле запроса не совпадают"
	defaultRelationsMessage = "Невозможно удалить запись, так как она связана с другими записями в системе"
)

// ForeignKey - проверка, что строка, на которую ссылается поле, существует.
// Value возвращает false, если ссылка не задана.
type ForeignKey[T any] struct {
	Table   string
	Value   func(item *T) (uint64, bool)
	Message string // может содержать %d для id
}

// UniqueRule - одна колонка или набор колонок, которые не должны повторяться.
// Conditions возвращает nil, если проверять нечего (например, пустой email).
type UniqueRule[T any] struct {
	Table      string
	Conditions func(item *T) []repositories.Condition
	Message    string
}

// RelationProbe - таблица и колонка, которые ссылаются на запись.
type RelationProbe struct {
	Table  string
	Column string
}

// Resource - описание сущности: сообщения, проверки и хуки.
// Из него ResourceService собирает весь CRUD.
type Resource[T types.Entity] struct {
	Name string
	// "Модель с ID %d не найдена"
	NotFound string
	// Сообщения для ошибок валидатора: "Поле.тег" или "Поле"
	Messages map[string]string

	// Validate - проверки, которые не выразить тегами. current == nil при создании.
	Validate   func(ctx context.Context, current, next *T) error
	References []ForeignKey[T]
	Uniques    []UniqueRule[T]

	Relations        []RelationProbe
	RelationsMessage string

	// Prepare вызывается после проверок, перед записью: значения по умолчанию, хеширование.
	Prepare func(ctx context.Context, current, next *T) error
	// Present убирает из ответа то, что отдавать нельзя.
	Present func(item *T)
	// AfterWrite вызывается после успешной записи. before == nil при создании.
	AfterWrite  func(ctx context.Context, before, after *T)
	AfterDelete func(ctx context.Context, item *T)
}

type ResourceServiceInterface[T types.Entity] interface {
	List(ctx context.Context, q types.ListQuery) ([]T, error)
	Get(ctx context.Context, id uint64) (*T, error)
	Create(ctx context.Context, item *T) (*T, error)
	Update(ctx context.Context, id uint64, item *T) error
	Delete(ctx context.Context, id uint64) error
	CheckRelations(ctx context.Context, id uint64) (bool, error)
}

type ResourceService[T types.Entity] struct {
	repo      repositories.ResourceRepositoryInterface[T]
	lookup    repositories.LookupRepositoryInterface
	validator *validator.Validate
	resource  Resource[T]
	logger    *zap.Logger
}

func NewResourceService[T types.Entity](
	repo repositories.ResourceRepositoryInterface[T],
	lookup repositories.LookupRepositoryInterface,
	validate *validator.Validate,
	resource Resource[T],
	logger *zap.Logger,
) *ResourceService[T] {
	return &ResourceService[T]{
		repo:      repo,
		lookup:    lookup,
		validator: validate,
		resource:  resource,
		logger:    logger.With(zap.String("resource", resource.Name)),
	}
}

func (s *ResourceService[T]) List(ctx context.Context, q types.ListQuery) ([]T, error) {
	items, err := s.repo.List(ctx, q)
	if err != nil {
		s.logger.Error("ошибка получения списка", zap.Error(err))
		return nil, err
	}
	if s.resource.Present != nil {
		for i := range items {
			s.resource.Present(&items[i])
		}
	}
	return items, nil
}

func (s *ResourceService[T]) Get(ctx context.Context, id uint64) (*T, error) {
	item, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	s.present(item)
	return item, nil
}

func (s *ResourceService[T]) Create(ctx context.Context, item *T) (*T, error) {
	if err := s.check(ctx, nil, item, 0); err != nil {
		return nil, err
	}
	if s.resource.Prepare != nil {
		if err := s.resource.Prepare(ctx, nil, item); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("ошибка при создании записи", zap.Error(err))
		return nil, err
	}
	s.logger.Info("запись создана", zap.Uint64("id", (*item).GetID()))

	if s.resource.AfterWrite != nil {
		s.resource.AfterWrite(ctx, nil, item)
	}
	s.present(item)
	return item, nil
}

// Update - полная замена. id в пути обязан совпадать с id в теле.
func (s *ResourceService[T]) Update(ctx context.Context, id uint64, item *T) error {
	if (*item).GetID() != id {
		return apperrors.NewValidationError(idMismatchMessage)
	}

	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.check(ctx, current, item, id); err != nil {
		return err
	}
	if s.resource.Prepare != nil {
		if err := s.resource.Prepare(ctx, current, item); err != nil {
			return err
		}
	}

	if err := s.repo.Update(ctx, id, item); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.notFound(id)
		}
		s.logger.Error("ошибка при обновлении записи", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("запись обновлена", zap.Uint64("id", id))

	if s.resource.AfterWrite != nil {
		s.resource.AfterWrite(ctx, current, item)
	}
	return nil
}

// Delete запрещает удаление, пока на запись кто-то ссылается.
func (s *ResourceService[T]) Delete(ctx context.Context, id uint64) error {
	current, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	related, err := s.hasRelations(ctx, id)
	if err != nil {
		return err
	}
	if related {
		msg := s.resource.RelationsMessage
		if msg == "" {
			msg = defaultRelationsMessage
		}
		return apperrors.NewValidationError("%s", msg)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.notFound(id)
		}
		s.logger.Error("ошибка при удалении записи", zap.Uint64("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("запись удалена", zap.Uint64("id", id))

	if s.resource.AfterDelete != nil {
		s.resource.AfterDelete(ctx, current)
	}
	return nil
}

func (s *ResourceService[T]) CheckRelations(ctx context.Context, id uint64) (bool, error) {
	if _, err := s.find(ctx, id); err != nil {
		return false, err
	}
	return s.hasRelations(ctx, id)
}

func (s *ResourceService[T]) find(ctx context.Context, id uint64) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.notFound(id)
		}
		s.logger.Error("ошибка поиска записи", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (s *ResourceService[T]) notFound(id uint64) error {
	return apperrors.NewNotFoundError(s.resource.NotFound, id)
}

func (s *ResourceService[T]) present(item *T) {
	if s.resource.Present != nil {
		s.resource.Present(item)
	}
}

// check: теги валидатора, затем Validate, затем ссылки, затем уникальность.
// Первая же ошибка возвращается, ничего не записывается.
func (s *ResourceService[T]) check(ctx context.Context, current, next *T, excludeID uint64) error {
	if err := s.validator.Struct(next); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return apperrors.NewValidationError("%s", customvalidator.FirstMessage(err, s.resource.Messages))
		}
		return err
	}
	if s.resource.Validate != nil {
		if err := s.resource.Validate(ctx, current, next); err != nil {
			return err
		}
	}

	for _, ref := range s.resource.References {
		refID, ok := ref.Value(next)
		if !ok {
			continue
		}
		exists, err := s.lookup.Exists(ctx, ref.Table, []repositories.Condition{{Column: "id", Value: refID}}, 0)
		if err != nil {
			return err
		}
		if !exists {
			if strings.Contains(ref.Message, "%d") {
				return apperrors.NewValidationError(ref.Message, refID)
			}
			return apperrors.NewValidationError("%s", ref.Message)
		}
	}

	for _, rule := range s.resource.Uniques {
		conds := rule.Conditions(next)
		if len(conds) == 0 {
			continue
		}
		taken, err := s.lookup.Exists(ctx, rule.Table, conds, excludeID)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidationError("%s", rule.Message)
		}
	}
	return nil
}

func (s *ResourceService[T]) hasRelations(ctx context.Context, id uint64) (bool, error) {
	for _, probe := range s.resource.Relations {
		exists, err := s.lookup.Exists(ctx, probe.Table, []repositories.Condition{{Column: probe.Column, Value: id}}, 0)
		if err != nil {
			return false, fmt.Errorf("проверка связей %s.%s: %w", probe.Table, probe.Column, err)
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}
