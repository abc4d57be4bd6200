package repositories

import (
	"context"
	"fmt"

	"inventory-system/internal/entities"
	"inventory-system/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	EquipmentRegister(ctx context.Context, q types.ListQuery) ([]entities.EquipmentRegisterItem, error)
}

type reportRepository struct {
	db querier
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

// BuildEquipmentRegisterQuery - реестр оборудования с аудиторией, ответственным и статусом.
// Поиск, фильтры и сортировка те же, что у списка /api/equipment.
func BuildEquipmentRegisterQuery(q types.ListQuery) (string, []interface{}, error) {
	builder := psql.Select(
		"e.id", "e.name", "e.inventory_number", "r.name", "u.last_name", "u.first_name", "u.middle_name",
		"e.cost", "s.name", "e.comment",
	).
		From("equipment e").
		LeftJoin("rooms r ON e.room_id = r.id").
		LeftJoin("users u ON e.responsible_user_id = u.id").
		LeftJoin("statuses s ON e.status_id = s.id")

	if q.Search != "" {
		or := make(sq.Or, 0, len(EquipmentTable.SearchColumns))
		for _, col := range EquipmentTable.SearchColumns {
			or = append(or, sq.Expr(fmt.Sprintf("strpos(e.%s, ?) > 0", col), q.Search))
		}
		builder = builder.Where(or)
	}
	for _, eq := range filterConditions(EquipmentTable.FilterColumns, q.Filter, "e.") {
		builder = builder.Where(eq)
	}

	direction := "ASC"
	if q.Descending() {
		direction = "DESC"
	}
	column, ok := EquipmentTable.SortColumns[NormalizeSortKey(q.SortBy)]
	if !ok || column == "id" {
		builder = builder.OrderBy("e.id " + direction)
	} else {
		builder = builder.OrderBy("e."+column+" "+direction, "e.id ASC")
	}

	return builder.ToSql()
}

func (r *reportRepository) EquipmentRegister(ctx context.Context, q types.ListQuery) ([]entities.EquipmentRegisterItem, error) {
	sql, args, err := BuildEquipmentRegisterQuery(q)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса реестра: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса реестра: %w", err)
	}
	defer rows.Close()

	items := make([]entities.EquipmentRegisterItem, 0)
	for rows.Next() {
		var item entities.EquipmentRegisterItem
		err := rows.Scan(
			&item.ID, &item.Name, &item.InventoryNumber, &item.RoomName,
			&item.ResponsibleLast, &item.ResponsibleFirst, &item.ResponsibleMiddle,
			&item.Cost, &item.StatusName, &item.Comment,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки реестра: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
