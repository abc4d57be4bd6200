package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Table описывает, как сущность T лежит в таблице.
type Table[T any] struct {
	Name string
	// Колонки без id, в том же порядке, что и Fields(item)[1:]
	Columns []string
	// Fields возвращает указатели на поля: первым идет id, дальше Columns.
	Fields func(item *T) []interface{}

	// Поиск подстроки (с учетом регистра) по этим колонкам, через OR
	SearchColumns []string
	// Ключ - значение sortBy в нижнем регистре без "_", значение - колонка
	SortColumns map[string]string
	// Колонки для filter[...] и выборок "по родителю"
	FilterColumns []string
}

func (t Table[T]) selectColumns() []string {
	return append([]string{"id"}, t.Columns...)
}

func (t Table[T]) writeValues(item *T) []interface{} {
	return t.Fields(item)[1:]
}

// NormalizeSortKey: "inventory_number", "InventoryNumber" -> "inventorynumber".
func NormalizeSortKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}

// BuildListQuery собирает SELECT для списка: поиск, фильтры, сортировка.
// Сортировка по умолчанию - id по возрастанию; при сортировке по полю id идет вторым ключом.
func BuildListQuery[T any](table Table[T], q types.ListQuery) sq.SelectBuilder {
	builder := psql.Select(table.selectColumns()...).From(table.Name)

	if q.Search != "" && len(table.SearchColumns) > 0 {
		conditions := make(sq.Or, 0, len(table.SearchColumns))
		for _, col := range table.SearchColumns {
			conditions = append(conditions, sq.Expr(fmt.Sprintf("strpos(%s, ?) > 0", col), q.Search))
		}
		builder = builder.Where(conditions)
	}

	for _, eq := range filterConditions(table.FilterColumns, q.Filter, "") {
		builder = builder.Where(eq)
	}

	direction := "ASC"
	if q.Descending() {
		direction = "DESC"
	}
	column, ok := table.SortColumns[NormalizeSortKey(q.SortBy)]
	if !ok || column == "id" {
		builder = builder.OrderBy("id " + direction)
	} else {
		builder = builder.OrderBy(column+" "+direction, "id ASC")
	}

	if q.Limit > 0 {
		builder = builder.Limit(q.Limit).Offset(q.Offset)
	}
	return builder
}

type ResourceRepositoryInterface[T any] interface {
	List(ctx context.Context, q types.ListQuery) ([]T, error)
	FindByID(ctx context.Context, id uint64) (*T, error)
	Create(ctx context.Context, item *T) error
	Update(ctx context.Context, id uint64, item *T) error
	Delete(ctx context.Context, id uint64) error
	WithTx(tx pgx.Tx) ResourceRepositoryInterface[T]
}

type ResourceRepository[T any] struct {
	storage querier
	table   Table[T]
}

func NewResourceRepository[T any](storage querier, table Table[T]) ResourceRepositoryInterface[T] {
	return &ResourceRepository[T]{storage: storage, table: table}
}

func (r *ResourceRepository[T]) WithTx(tx pgx.Tx) ResourceRepositoryInterface[T] {
	return &ResourceRepository[T]{storage: tx, table: r.table}
}

func (r *ResourceRepository[T]) List(ctx context.Context, q types.ListQuery) ([]T, error) {
	query, args, err := BuildListQuery(r.table, q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса к %s: %w", r.table.Name, err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки из %s: %w", r.table.Name, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		var item T
		if err := rows.Scan(r.table.Fields(&item)...); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки %s: %w", r.table.Name, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *ResourceRepository[T]) FindByID(ctx context.Context, id uint64) (*T, error) {
	query, args, err := psql.Select(r.table.selectColumns()...).From(r.table.Name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var item T
	if err := r.storage.QueryRow(ctx, query, args...).Scan(r.table.Fields(&item)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка поиска в %s: %w", r.table.Name, err)
	}
	return &item, nil
}

// Create вставляет строку и записывает выданный id в item.
func (r *ResourceRepository[T]) Create(ctx context.Context, item *T) error {
	query, args, err := psql.Insert(r.table.Name).
		Columns(r.table.Columns...).
		Values(r.table.writeValues(item)...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.storage.QueryRow(ctx, query, args...).Scan(r.table.Fields(item)[0]); err != nil {
		return mapWriteError(r.table.Name, err)
	}
	return nil
}

// Update - полная замена строки. Если строки уже нет - ErrNotFound.
func (r *ResourceRepository[T]) Update(ctx context.Context, id uint64, item *T) error {
	builder := psql.Update(r.table.Name).Where(sq.Eq{"id": id})
	values := r.table.writeValues(item)
	for i, col := range r.table.Columns {
		builder = builder.Set(col, values[i])
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(r.table.Name, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ResourceRepository[T]) Delete(ctx context.Context, id uint64) error {
	query, args, err := psql.Delete(r.table.Name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	result, err := r.storage.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError(r.table.Name, err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// mapWriteError переводит нарушения ограничений БД в ErrConflict,
// а значения, не влезающие в колонку, в ErrBadRequest.
// Сюда попадаем только при гонке: сервис проверяет уникальность и ссылки заранее.
func mapWriteError(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503":
			return fmt.Errorf("%s: %s: %w", table, pgErr.ConstraintName, apperrors.ErrConflict)
		case "22001", "22003":
			return fmt.Errorf("%s: %s: %w", table, pgErr.Message, apperrors.ErrBadRequest)
		}
	}
	return fmt.Errorf("ошибка записи в %s: %w", table, err)
}

// filterConditions - условия filter[...] только по колонкам из белого списка,
// в порядке имен колонок. prefix - алиас таблицы в запросах с JOIN.
func filterConditions(allowed []string, filter map[string]interface{}, prefix string) []sq.Eq {
	if len(filter) == 0 {
		return nil
	}
	values := make(map[string]interface{}, len(filter))
	for key, val := range filter {
		if column, ok := lookupColumn(allowed, key); ok {
			values[column] = val
		}
	}
	columns := make([]string, 0, len(values))
	for column := range values {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	conditions := make([]sq.Eq, 0, len(columns))
	for _, column := range columns {
		conditions = append(conditions, sq.Eq{prefix + column: values[column]})
	}
	return conditions
}

// lookupColumn возвращает имя колонки из белого списка, а не пришедшее от клиента.
func lookupColumn(list []string, item string) (string, bool) {
	for _, val := range list {
		if strings.EqualFold(val, item) {
			return val, true
		}
	}
	return "", false
}
