package repositories

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"inventory-system/internal/entities"
	"inventory-system/pkg/types"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DropdownSource - откуда берется список и как из строки получается текст.
type DropdownSource struct {
	Table string
	// SQL-выражение для display_text
	Display string
}

// Списки, текст которых собирается в SQL. Пользователи собираются отдельно.
var DropdownSources = map[string]DropdownSource{
	"consumable-types":           {Table: "consumable_types", Display: "name"},
	"consumables":                {Table: "consumables", Display: "name"},
	"consumable-characteristics": {Table: "consumable_characteristics", Display: "name"},
	"software":                   {Table: "software", Display: "name"},
	"equipment-types":            {Table: "equipment_types", Display: "name"},
	"developers":                 {Table: "developers", Display: "name"},
	"statuses":                   {Table: "statuses", Display: "name"},
	"directions":                 {Table: "directions", Display: "name"},
	"models":                     {Table: "models", Display: "name"},
	"equipment":                  {Table: "equipment", Display: "name || ' (' || inventory_number || ')'"},
	"rooms":                      {Table: "rooms", Display: "COALESCE(NULLIF(short_name, ''), name)"},
	"inventories":                {Table: "inventories", Display: "name || ' (' || to_char(start_date, 'DD.MM.YYYY') || ')'"},
}

const UsersDropdown = "users"

type DropdownRepositoryInterface interface {
	Items(ctx context.Context, source DropdownSource) ([]types.DropdownItem, error)
	Users(ctx context.Context) ([]types.DropdownItem, error)
}

type DropdownRepository struct {
	storage querier
}

func NewDropdownRepository(storage *pgxpool.Pool) DropdownRepositoryInterface {
	return &DropdownRepository{storage: storage}
}

// BuildDropdownQuery: SELECT id, <display> AS display_text ... ORDER BY display_text, id.
func BuildDropdownQuery(source DropdownSource) (string, []interface{}, error) {
	return psql.Select("id", source.Display+" AS display_text").
		From(source.Table).
		OrderBy("display_text ASC", "id ASC").
		ToSql()
}

func (r *DropdownRepository) Items(ctx context.Context, source DropdownSource) ([]types.DropdownItem, error) {
	query, args, err := BuildDropdownQuery(source)
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка %s: %w", source.Table, err)
	}
	defer rows.Close()

	items := make([]types.DropdownItem, 0)
	for rows.Next() {
		var item types.DropdownItem
		if err := rows.Scan(&item.ID, &item.DisplayText); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки списка %s: %w", source.Table, err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Users - "И.О. Фамилия", упорядочено по тексту.
func (r *DropdownRepository) Users(ctx context.Context) ([]types.DropdownItem, error) {
	query, args, err := psql.Select("id", "last_name", "first_name", "middle_name").
		From("users").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка пользователей: %w", err)
	}
	defer rows.Close()

	items := make([]types.DropdownItem, 0)
	for rows.Next() {
		var (
			id                  uint64
			lastName, firstName string
			middleName          null.String
		)
		if err := rows.Scan(&id, &lastName, &firstName, &middleName); err != nil {
			return nil, fmt.Errorf("ошибка чтения строки списка пользователей: %w", err)
		}
		items = append(items, types.DropdownItem{ID: id, DisplayText: entities.ShortName(lastName, firstName, middleName.String)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	SortDropdown(items)
	return items, nil
}

// SortDropdown упорядочивает по тексту, при равенстве - по id.
func SortDropdown(items []types.DropdownItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := strings.Compare(items[i].DisplayText, items[j].DisplayText); c != 0 {
			return c < 0
		}
		return items[i].ID < items[j].ID
	})
}
