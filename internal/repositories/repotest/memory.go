// Package repotest - хранилища в памяти для тестов сервисов и слушателей.
package repotest

import (
	"context"
	"sort"
	"sync"

	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	"github.com/jackc/pgx/v5"
)

// MemoryRepository реализует ResourceRepositoryInterface поверх map.
// Поиск, фильтры и сортировка не поддерживаются: List отдает все по id.
type MemoryRepository[T any] struct {
	mu     sync.Mutex
	table  repositories.Table[T]
	rows   map[uint64]T
	nextID uint64
	// CreateErr, если задан, возвращается из Create.
	CreateErr error
}

func NewMemoryRepository[T any](table repositories.Table[T]) *MemoryRepository[T] {
	return &MemoryRepository[T]{table: table, rows: make(map[uint64]T), nextID: 1}
}

func (r *MemoryRepository[T]) idOf(item *T) *uint64 {
	return r.table.Fields(item)[0].(*uint64)
}

// Put кладет строку как есть, id берется из нее.
func (r *MemoryRepository[T]) Put(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := *r.idOf(&item)
	r.rows[id] = item
	if id >= r.nextID {
		r.nextID = id + 1
	}
}

func (r *MemoryRepository[T]) All() []T {
	items, _ := r.List(context.Background(), types.ListQuery{})
	return items
}

func (r *MemoryRepository[T]) List(_ context.Context, _ types.ListQuery) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	items := make([]T, 0, len(ids))
	for _, id := range ids {
		items = append(items, r.rows[id])
	}
	return items, nil
}

func (r *MemoryRepository[T]) FindByID(_ context.Context, id uint64) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &item, nil
}

func (r *MemoryRepository[T]) Create(_ context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	id := r.nextID
	r.nextID++
	*r.idOf(item) = id
	r.rows[id] = *item
	return nil
}

func (r *MemoryRepository[T]) Update(_ context.Context, id uint64, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	r.rows[id] = *item
	return nil
}

func (r *MemoryRepository[T]) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepository[T]) WithTx(_ pgx.Tx) repositories.ResourceRepositoryInterface[T] {
	return r
}

// TxManager выполняет fn без настоящей транзакции.
type TxManager struct {
	Calls int
}

func (m *TxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.Calls++
	return fn(nil)
}
