package repotest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
)

// Lookup отвечает на Exists по заранее заданным строкам.
// Строка таблицы - набор "колонка -> значение", значения сравниваются через fmt.Sprint.
type Lookup struct {
	mu     sync.Mutex
	tables map[string][]map[string]interface{}
	ints   map[string]int64
}

func NewLookup() *Lookup {
	return &Lookup{tables: make(map[string][]map[string]interface{}), ints: make(map[string]int64)}
}

// Add добавляет строку в таблицу. Колонку "id" передавать явно.
func (l *Lookup) Add(table string, row map[string]interface{}) *Lookup {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tables[table] = append(l.tables[table], row)
	return l
}

// SetInt задает ответ IntColumn.
func (l *Lookup) SetInt(table, column string, id uint64, value int64) *Lookup {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ints[fmt.Sprintf("%s.%s.%d", table, column, id)] = value
	return l
}

func (l *Lookup) Exists(_ context.Context, table string, conds []repositories.Condition, excludeID uint64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, row := range l.tables[table] {
		if excludeID != 0 && fmt.Sprint(row["id"]) == fmt.Sprint(excludeID) {
			continue
		}
		if matches(row, conds) {
			return true, nil
		}
	}
	return false, nil
}

func (l *Lookup) IntColumn(_ context.Context, table, column string, id uint64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.ints[fmt.Sprintf("%s.%s.%d", table, column, id)]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	return v, nil
}

func matches(row map[string]interface{}, conds []repositories.Condition) bool {
	for _, c := range conds {
		got, ok := row[c.Column]
		if !ok {
			return false
		}
		a, b := fmt.Sprint(got), fmt.Sprint(c.Value)
		if c.FoldCase {
			if !strings.EqualFold(a, b) {
				return false
			}
		} else if a != b {
			return false
		}
	}
	return true
}
