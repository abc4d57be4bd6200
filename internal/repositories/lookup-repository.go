package repositories

import (
	"context"
	"errors"
	"fmt"

	apperrors "inventory-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Condition - одно условие равенства для проверок существования.
type Condition struct {
	Column string
	Value  interface{}
	// FoldCase сравнивает строки без учета регистра
	FoldCase bool
}

// LookupRepositoryInterface отвечает на вопросы "есть ли такая строка":
// существование внешних ключей, уникальность, наличие ссылок перед удалением.
type LookupRepositoryInterface interface {
	Exists(ctx context.Context, table string, conds []Condition, excludeID uint64) (bool, error)
	IntColumn(ctx context.Context, table, column string, id uint64) (int64, error)
}

type LookupRepository struct {
	storage querier
}

func NewLookupRepository(storage *pgxpool.Pool) LookupRepositoryInterface {
	return &LookupRepository{storage: storage}
}

// BuildExistsQuery - SELECT EXISTS(SELECT 1 FROM table WHERE ... [AND id <> excludeID]).
func BuildExistsQuery(table string, conds []Condition, excludeID uint64) (string, []interface{}, error) {
	sub := sq.Select("1").From(table)
	for _, c := range conds {
		if c.FoldCase {
			sub = sub.Where(sq.Expr(fmt.Sprintf("lower(%s) = lower(?)", c.Column), c.Value))
		} else {
			sub = sub.Where(sq.Eq{c.Column: c.Value})
		}
	}
	if excludeID != 0 {
		sub = sub.Where(sq.NotEq{"id": excludeID})
	}

	subSQL, args, err := sub.ToSql()
	if err != nil {
		return "", nil, err
	}
	query, err := sq.Dollar.ReplacePlaceholders("SELECT EXISTS(" + subSQL + ")")
	if err != nil {
		return "", nil, err
	}
	return query, args, nil
}

func (r *LookupRepository) Exists(ctx context.Context, table string, conds []Condition, excludeID uint64) (bool, error) {
	query, args, err := BuildExistsQuery(table, conds, excludeID)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования в %s: %w", table, err)
	}
	return exists, nil
}

// IntColumn читает одно числовое поле строки, например остаток расходника.
func (r *LookupRepository) IntColumn(ctx context.Context, table, column string, id uint64) (int64, error) {
	query, args, err := psql.Select(column).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}

	var value int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrNotFound
		}
		return 0, fmt.Errorf("ошибка чтения %s.%s: %w", table, column, err)
	}
	return value, nil
}
