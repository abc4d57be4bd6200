package repositories

import (
	"inventory-system/internal/entities"
)

// Справочники: поиск по наименованию, сортировка по id или наименованию.

var EquipmentTypeTable = Table[entities.EquipmentType]{
	Name:    "equipment_types",
	Columns: []string{"name"},
	Fields: func(e *entities.EquipmentType) []interface{} {
		return []interface{}{&e.ID, &e.Name}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name"},
}

var DirectionTable = Table[entities.Direction]{
	Name:    "directions",
	Columns: []string{"name"},
	Fields: func(e *entities.Direction) []interface{} {
		return []interface{}{&e.ID, &e.Name}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name"},
}

var StatusTable = Table[entities.Status]{
	Name:    "statuses",
	Columns: []string{"name"},
	Fields: func(e *entities.Status) []interface{} {
		return []interface{}{&e.ID, &e.Name}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name"},
}

var DeveloperTable = Table[entities.Developer]{
	Name:    "developers",
	Columns: []string{"name"},
	Fields: func(e *entities.Developer) []interface{} {
		return []interface{}{&e.ID, &e.Name}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name"},
}

var ConsumableTypeTable = Table[entities.ConsumableType]{
	Name:    "consumable_types",
	Columns: []string{"name", "description"},
	Fields: func(e *entities.ConsumableType) []interface{} {
		return []interface{}{&e.ID, &e.Name, &e.Description}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name"},
}

var RoomTable = Table[entities.Room]{
	Name:    "rooms",
	Columns: []string{"name", "short_name", "responsible_user_id", "temp_responsible_user_id"},
	Fields: func(e *entities.Room) []interface{} {
		return []interface{}{&e.ID, &e.Name, &e.ShortName, &e.ResponsibleUserID, &e.TempResponsibleUserID}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name", "shortname": "short_name"},
	FilterColumns: []string{"responsible_user_id", "temp_responsible_user_id"},
}
