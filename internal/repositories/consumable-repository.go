package repositories

import (
	"inventory-system/internal/entities"
)

var ConsumableTable = Table[entities.Consumable]{
	Name: "consumables",
	Columns: []string{
		"name", "description", "arrival_date", "photo", "quantity", "consumable_type_id",
		"responsible_user_id", "temp_responsible_user_id",
	},
	Fields: func(e *entities.Consumable) []interface{} {
		return []interface{}{
			&e.ID, &e.Name, &e.Description, &e.ArrivalDate, &e.Photo, &e.Quantity, &e.ConsumableTypeID,
			&e.ResponsibleUserID, &e.TempResponsibleUserID,
		}
	},
	SearchColumns: []string{"name"},
	SortColumns: map[string]string{
		"id": "id", "name": "name", "arrivaldate": "arrival_date", "quantity": "quantity", "consumabletypeid": "consumable_type_id",
	},
	FilterColumns: []string{"consumable_type_id", "responsible_user_id"},
}

var ConsumableCharacteristicTable = Table[entities.ConsumableCharacteristic]{
	Name:    "consumable_characteristics",
	Columns: []string{"consumable_type_id", "name"},
	Fields: func(e *entities.ConsumableCharacteristic) []interface{} {
		return []interface{}{&e.ID, &e.ConsumableTypeID, &e.Name}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name", "consumabletypeid": "consumable_type_id"},
	FilterColumns: []string{"consumable_type_id"},
}

var ConsumableCharacteristicValueTable = Table[entities.ConsumableCharacteristicValue]{
	Name:    "consumable_characteristic_values",
	Columns: []string{"consumable_id", "characteristic_id", "value"},
	Fields: func(e *entities.ConsumableCharacteristicValue) []interface{} {
		return []interface{}{&e.ID, &e.ConsumableID, &e.CharacteristicID, &e.Value}
	},
	SortColumns:   map[string]string{"id": "id"},
	FilterColumns: []string{"consumable_id", "characteristic_id"},
}

var ConsumableEquipmentTable = Table[entities.ConsumableEquipment]{
	Name:    "consumable_equipment",
	Columns: []string{"consumable_id", "equipment_id", "quantity_used", "attached_at", "attached_by_user_id"},
	Fields: func(e *entities.ConsumableEquipment) []interface{} {
		return []interface{}{&e.ID, &e.ConsumableID, &e.EquipmentID, &e.QuantityUsed, &e.AttachedAt, &e.AttachedByUserID}
	},
	SortColumns:   map[string]string{"id": "id", "attachedat": "attached_at"},
	FilterColumns: []string{"consumable_id", "equipment_id"},
}
