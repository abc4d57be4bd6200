package repositories

import (
	"errors"
	"testing"

	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_Defaults(t *testing.T) {
	query, args, err := BuildListQuery(DirectionTable, types.ListQuery{}).ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM directions ORDER BY id ASC", query)
	assert.Empty(t, args)
}

func TestBuildListQuery_SearchAndSort(t *testing.T) {
	q := types.ListQuery{Search: "101", SortBy: "Short_Name", SortOrder: "desc"}

	query, args, err := BuildListQuery(RoomTable, q).ToSql()

	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, name, short_name, responsible_user_id, temp_responsible_user_id FROM rooms "+
			"WHERE (strpos(name, $1) > 0) ORDER BY short_name DESC, id ASC",
		query)
	assert.Equal(t, []interface{}{"101"}, args)
}

func TestBuildListQuery_SearchSeveralColumns(t *testing.T) {
	query, args, err := BuildListQuery(UsersTable, types.ListQuery{Search: "ив"}).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query,
		"WHERE (strpos(last_name, $1) > 0 OR strpos(first_name, $2) > 0 OR strpos(username, $3) > 0 OR strpos(email, $4) > 0)")
	assert.Len(t, args, 4)
}

func TestBuildListQuery_UnknownSortFallsBackToID(t *testing.T) {
	query, _, err := BuildListQuery(EquipmentTable, types.ListQuery{SortBy: "password", SortOrder: "desc"}).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY id DESC")
	assert.NotContains(t, query, "password")
}

func TestBuildListQuery_FiltersUseWhitelist(t *testing.T) {
	q := types.ListQuery{
		Filter: map[string]interface{}{"ROOM_ID": int64(3), "1=1; drop table users": int64(1)},
		Limit:  20,
		Offset: 40,
	}

	query, args, err := BuildListQuery(EquipmentTable, q).ToSql()

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE room_id = $1")
	assert.NotContains(t, query, "drop")
	assert.Contains(t, query, "LIMIT 20 OFFSET 40")
	assert.Equal(t, []interface{}{int64(3)}, args)
}

func TestNormalizeSortKey(t *testing.T) {
	assert.Equal(t, "inventorynumber", NormalizeSortKey(" Inventory_Number "))
	assert.Equal(t, "ipaddress", NormalizeSortKey("IPAddress"))
}

func TestBuildExistsQuery(t *testing.T) {
	query, args, err := BuildExistsQuery("users", []Condition{{Column: "email", Value: "A@b.ru", FoldCase: true}}, 5)

	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1) AND id <> $2)", query)
	assert.Equal(t, []interface{}{"A@b.ru", uint64(5)}, args)
}

func TestBuildExistsQuery_Composite(t *testing.T) {
	conds := []Condition{{Column: "equipment_id", Value: uint64(1)}, {Column: "software_id", Value: uint64(2)}}

	query, args, err := BuildExistsQuery("equipment_software", conds, 0)

	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS(SELECT 1 FROM equipment_software WHERE equipment_id = $1 AND software_id = $2)", query)
	assert.Len(t, args, 2)
}

func TestBuildDropdownQuery(t *testing.T) {
	query, _, err := BuildDropdownQuery(DropdownSources["statuses"])

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name AS display_text FROM statuses ORDER BY display_text ASC, id ASC", query)
	assert.Len(t, DropdownSources, 12)
}

func TestSortDropdown(t *testing.T) {
	items := []types.DropdownItem{{ID: 3, DisplayText: "Б"}, {ID: 2, DisplayText: "А"}, {ID: 1, DisplayText: "Б"}}

	SortDropdown(items)

	assert.Equal(t, []uint64{2, 1, 3}, []uint64{items[0].ID, items[1].ID, items[2].ID})
}

func TestBuildEquipmentRegisterQuery(t *testing.T) {
	query, args, err := BuildEquipmentRegisterQuery(types.ListQuery{Search: "ПК", SortBy: "inventoryNumber", SortOrder: "desc"})

	require.NoError(t, err)
	assert.Contains(t, query, "LEFT JOIN rooms r ON e.room_id = r.id")
	assert.Contains(t, query, "WHERE (strpos(e.name, $1) > 0)")
	assert.Contains(t, query, "ORDER BY e.inventory_number DESC, e.id ASC")
	assert.Equal(t, []interface{}{"ПК"}, args)
}

func TestBuildEquipmentRegisterQuery_Filters(t *testing.T) {
	query, args, err := BuildEquipmentRegisterQuery(types.ListQuery{
		Filter: map[string]interface{}{"room_id": uint64(4), "status_id": uint64(2), "password": "x"},
	})

	require.NoError(t, err)
	assert.Contains(t, query, "WHERE e.room_id = $1 AND e.status_id = $2")
	assert.NotContains(t, query, "password")
	assert.Equal(t, []interface{}{uint64(4), uint64(2)}, args)
}

func assertTableShape[T any](t *testing.T, table Table[T]) {
	t.Helper()
	var item T
	assert.Len(t, table.Fields(&item), len(table.Columns)+1, table.Name)
	for key, col := range table.SortColumns {
		assert.Equal(t, NormalizeSortKey(key), key, table.Name)
		assert.True(t, col == "id" || contains(table.Columns, col), "%s: %s", table.Name, col)
	}
	for _, col := range table.FilterColumns {
		assert.True(t, contains(table.Columns, col), "%s: %s", table.Name, col)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestTables_FieldsMatchColumns(t *testing.T) {
	assertTableShape(t, EquipmentTypeTable)
	assertTableShape(t, DirectionTable)
	assertTableShape(t, StatusTable)
	assertTableShape(t, DeveloperTable)
	assertTableShape(t, ConsumableTypeTable)
	assertTableShape(t, RoomTable)
	assertTableShape(t, ModelTable)
	assertTableShape(t, SoftwareTable)
	assertTableShape(t, EquipmentTable)
	assertTableShape(t, EquipmentSoftwareTable)
	assertTableShape(t, NetworkSettingsTable)
	assertTableShape(t, UsersTable)
	assertTableShape(t, ConsumableTable)
	assertTableShape(t, ConsumableCharacteristicTable)
	assertTableShape(t, ConsumableCharacteristicValueTable)
	assertTableShape(t, ConsumableEquipmentTable)
	assertTableShape(t, EquipmentRoomHistoryTable)
	assertTableShape(t, EquipmentResponsibleHistoryTable)
	assertTableShape(t, ConsumableResponsibleHistoryTable)
	assertTableShape(t, InventoryTable)
	assertTableShape(t, InventoryCheckTable)
}

func TestMapWriteError(t *testing.T) {
	dup := mapWriteError("users", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})
	assert.ErrorIs(t, dup, apperrors.ErrConflict)

	overflow := mapWriteError("equipment", &pgconn.PgError{Code: "22003", Message: "numeric field overflow"})
	assert.ErrorIs(t, overflow, apperrors.ErrBadRequest)

	other := mapWriteError("equipment", errors.New("conn closed"))
	assert.False(t, errors.Is(other, apperrors.ErrBadRequest))
	assert.False(t, errors.Is(other, apperrors.ErrConflict))
}
