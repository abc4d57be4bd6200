package services

import (
	"context"
	"fmt"
	"sort"

	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	"go.uber.org/zap"
)

type DropdownServiceInterface interface {
	Names() []string
	List(ctx context.Context, name string) ([]types.DropdownItem, error)
	All(ctx context.Context) (map[string][]types.DropdownItem, error)
}

// DropdownService собирает списки для выпадающих полей. Каждый вызов идет в БД.
type DropdownService struct {
	repo   repositories.DropdownRepositoryInterface
	logger *zap.Logger
}

func NewDropdownService(repo repositories.DropdownRepositoryInterface, logger *zap.Logger) *DropdownService {
	return &DropdownService{repo: repo, logger: logger}
}

// Names - все списки в алфавитном порядке.
func (s *DropdownService) Names() []string {
	names := make([]string, 0, len(repositories.DropdownSources)+1)
	for name := range repositories.DropdownSources {
		names = append(names, name)
	}
	names = append(names, repositories.UsersDropdown)
	sort.Strings(names)
	return names
}

func (s *DropdownService) List(ctx context.Context, name string) ([]types.DropdownItem, error) {
	if name == repositories.UsersDropdown {
		return s.repo.Users(ctx)
	}
	source, ok := repositories.DropdownSources[name]
	if !ok {
		return nil, apperrors.NewNotFoundError("Список %q не найден", name)
	}
	items, err := s.repo.Items(ctx, source)
	if err != nil {
		s.logger.Error("ошибка получения списка", zap.String("list", name), zap.Error(err))
		return nil, err
	}
	return items, nil
}

func (s *DropdownService) All(ctx context.Context) (map[string][]types.DropdownItem, error) {
	result := make(map[string][]types.DropdownItem, len(repositories.DropdownSources)+1)
	for _, name := range s.Names() {
		items, err := s.List(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("список %s: %w", name, err)
		}
		result[name] = items
	}
	return result, nil
}
