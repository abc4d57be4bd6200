package repotest

import (
	"context"
	"errors"
	"sync"
	"time"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
)

// UserRepository - пользователи в памяти. Служит и ресурсом, и хранилищем сессий.
type UserRepository struct {
	*MemoryRepository[entities.User]
	Lookups int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{MemoryRepository: NewMemoryRepository(repositories.UsersTable)}
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, u := range r.All() {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	r.Lookups++
	return r.FindByID(ctx, id)
}

func (r *UserRepository) SetToken(ctx context.Context, id uint64, token null.String) error {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	u.Token = token
	return r.MemoryRepository.Update(ctx, id, u)
}

// Update не трогает token, как и UPDATE в БД.
func (r *UserRepository) Update(ctx context.Context, id uint64, item *entities.User) error {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	next := *item
	next.Token = current.Token
	return r.MemoryRepository.Update(ctx, id, &next)
}

func (r *UserRepository) WithTx(_ pgx.Tx) repositories.ResourceRepositoryInterface[entities.User] {
	return r
}

// MemoryCache - кеш в памяти без учета TTL. Down имитирует недоступный Redis.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string]string
	Down bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: make(map[string]string)}
}

var errCacheDown = errors.New("connection refused")

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return errCacheDown
	}
	return c.put(key, value)
}

func (c *MemoryCache) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return false, errCacheDown
	}
	if _, ok := c.data[key]; ok {
		return false, nil
	}
	if err := c.put(key, value); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) put(key string, value interface{}) error {
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	default:
		return errors.New("MemoryCache: поддерживаются только string и []byte")
	}
	return nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return "", errCacheDown
	}
	v, ok := c.data[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *MemoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Down {
		return errCacheDown
	}
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}
