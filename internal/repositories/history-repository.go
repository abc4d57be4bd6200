package repositories

import (
	"inventory-system/internal/entities"
)

var EquipmentRoomHistoryTable = Table[entities.EquipmentRoomHistory]{
	Name:    "equipment_room_history",
	Columns: []string{"equipment_id", "room_id", "moved_at", "moved_by_user_id", "comment"},
	Fields: func(e *entities.EquipmentRoomHistory) []interface{} {
		return []interface{}{&e.ID, &e.EquipmentID, &e.RoomID, &e.MovedAt, &e.MovedByUserID, &e.Comment}
	},
	SortColumns:   map[string]string{"id": "id", "movedat": "moved_at"},
	FilterColumns: []string{"equipment_id", "room_id"},
}

var EquipmentResponsibleHistoryTable = Table[entities.EquipmentResponsibleHistory]{
	Name:    "equipment_responsible_history",
	Columns: []string{"equipment_id", "responsible_user_id", "assigned_at", "assigned_by_user_id", "comment"},
	Fields: func(e *entities.EquipmentResponsibleHistory) []interface{} {
		return []interface{}{&e.ID, &e.EquipmentID, &e.ResponsibleUserID, &e.AssignedAt, &e.AssignedByUserID, &e.Comment}
	},
	SortColumns:   map[string]string{"id": "id", "assignedat": "assigned_at"},
	FilterColumns: []string{"equipment_id", "responsible_user_id"},
}

var ConsumableResponsibleHistoryTable = Table[entities.ConsumableResponsibleHistory]{
	Name:    "consumable_responsible_history",
	Columns: []string{"consumable_id", "responsible_user_id", "assigned_at", "assigned_by_user_id", "comment"},
	Fields: func(e *entities.ConsumableResponsibleHistory) []interface{} {
		return []interface{}{&e.ID, &e.ConsumableID, &e.ResponsibleUserID, &e.AssignedAt, &e.AssignedByUserID, &e.Comment}
	},
	SortColumns:   map[string]string{"id": "id", "assignedat": "assigned_at"},
	FilterColumns: []string{"consumable_id", "responsible_user_id"},
}

var InventoryTable = Table[entities.Inventory]{
	Name:    "inventories",
	Columns: []string{"name", "start_date", "end_date", "created_by_user_id"},
	Fields: func(e *entities.Inventory) []interface{} {
		return []interface{}{&e.ID, &e.Name, &e.StartDate, &e.EndDate, &e.CreatedByUserID}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name", "startdate": "start_date", "enddate": "end_date"},
}

var InventoryCheckTable = Table[entities.InventoryCheck]{
	Name:    "inventory_checks",
	Columns: []string{"inventory_id", "equipment_id", "checked_by_user_id", "checked_at", "comment"},
	Fields: func(e *entities.InventoryCheck) []interface{} {
		return []interface{}{&e.ID, &e.InventoryID, &e.EquipmentID, &e.CheckedByUserID, &e.CheckedAt, &e.Comment}
	},
	SortColumns:   map[string]string{"id": "id", "checkedat": "checked_at"},
	FilterColumns: []string{"inventory_id", "equipment_id"},
}
