package services

import (
	"context"
	"strings"
	"time"

	"inventory-system/internal/repositories"
	"inventory-system/pkg/eventbus"
	"inventory-system/pkg/utils"

	"github.com/aarondl/null/v8"
)

// EventPublisher - то, что нужно ресурсам от шины событий.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

// SessionEvicter сбрасывает закешированную сессию пользователя.
type SessionEvicter interface {
	EvictSession(ctx context.Context, userID uint64)
}

// Clock подменяется в тестах.
type Clock func() time.Time

func requiredRef(id uint64) (uint64, bool) { return id, id != 0 }

func optionalRef(id null.Uint64) (uint64, bool) { return id.Uint64, id.Valid && id.Uint64 != 0 }

func nameUnique[T any](table string, name func(*T) string, foldCase bool, message string) UniqueRule[T] {
	return UniqueRule[T]{
		Table: table,
		Conditions: func(item *T) []repositories.Condition {
			return []repositories.Condition{{Column: "name", Value: name(item), FoldCase: foldCase}}
		},
		Message: message,
	}
}

func pairUnique[T any](table, colA, colB string, values func(*T) (uint64, uint64), message string) UniqueRule[T] {
	return UniqueRule[T]{
		Table: table,
		Conditions: func(item *T) []repositories.Condition {
			a, b := values(item)
			return []repositories.Condition{{Column: colA, Value: a}, {Column: colB, Value: b}}
		},
		Message: message,
	}
}

// timeOrNow: время из запроса, иначе старое значение, иначе сейчас.
func timeOrNow(next, current null.Time, now Clock) null.Time {
	if next.Valid {
		return next
	}
	if current.Valid {
		return current
	}
	return null.TimeFrom(now())
}

// actorOr: пользователь из запроса, иначе старое значение, иначе тот, кто выполняет запрос.
func actorOr(ctx context.Context, next, current null.Uint64) null.Uint64 {
	if next.Valid {
		return next
	}
	if current.Valid {
		return current
	}
	if userID, err := utils.GetUserIDFromCtx(ctx); err == nil {
		return null.Uint64From(userID)
	}
	return null.Uint64{}
}

func actorID(ctx context.Context) uint64 {
	userID, _ := utils.GetUserIDFromCtx(ctx)
	return userID
}

// changedRef: новое значение ссылки, если оно задано и отличается от старого.
func changedRef(before, after null.Uint64) (null.Uint64, bool) {
	if !after.Valid || after.Uint64 == 0 {
		return null.Uint64{}, false
	}
	if before.Valid && before.Uint64 == after.Uint64 {
		return null.Uint64{}, false
	}
	return after, true
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
