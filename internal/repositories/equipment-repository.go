package repositories

import (
	"inventory-system/internal/entities"
)

var ModelTable = Table[entities.Model]{
	Name:    "models",
	Columns: []string{"name", "equipment_type_id"},
	Fields: func(e *entities.Model) []interface{} {
		return []interface{}{&e.ID, &e.Name, &e.EquipmentTypeID}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name", "equipmenttypeid": "equipment_type_id"},
	FilterColumns: []string{"equipment_type_id"},
}

var SoftwareTable = Table[entities.Software]{
	Name:    "software",
	Columns: []string{"name", "developer_id", "version"},
	Fields: func(e *entities.Software) []interface{} {
		return []interface{}{&e.ID, &e.Name, &e.DeveloperID, &e.Version}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name", "developerid": "developer_id", "version": "version"},
	FilterColumns: []string{"developer_id"},
}

var EquipmentTable = Table[entities.Equipment]{
	Name: "equipment",
	Columns: []string{
		"name", "photo", "inventory_number", "room_id", "responsible_user_id", "temp_responsible_user_id",
		"cost", "direction_id", "status_id", "model_id", "comment",
	},
	Fields: func(e *entities.Equipment) []interface{} {
		return []interface{}{
			&e.ID, &e.Name, &e.Photo, &e.InventoryNumber, &e.RoomID, &e.ResponsibleUserID, &e.TempResponsibleUserID,
			&e.Cost, &e.DirectionID, &e.StatusID, &e.ModelID, &e.Comment,
		}
	},
	SearchColumns: []string{"name"},
	SortColumns:   map[string]string{"id": "id", "name": "name", "inventorynumber": "inventory_number", "cost": "cost"},
	FilterColumns: []string{"room_id", "responsible_user_id", "status_id", "direction_id", "model_id"},
}

var EquipmentSoftwareTable = Table[entities.EquipmentSoftware]{
	Name:    "equipment_software",
	Columns: []string{"equipment_id", "software_id"},
	Fields: func(e *entities.EquipmentSoftware) []interface{} {
		return []interface{}{&e.ID, &e.EquipmentID, &e.SoftwareID}
	},
	SortColumns:   map[string]string{"id": "id"},
	FilterColumns: []string{"equipment_id", "software_id"},
}

var NetworkSettingsTable = Table[entities.NetworkSettings]{
	Name: "network_settings",
	Columns: []string{
		"equipment_id", "ip_address", "subnet_mask", "default_gateway", "dns_primary", "dns_secondary", "mac_address",
	},
	Fields: func(e *entities.NetworkSettings) []interface{} {
		return []interface{}{
			&e.ID, &e.EquipmentID, &e.IPAddress, &e.SubnetMask, &e.DefaultGateway, &e.DNSPrimary, &e.DNSSecondary, &e.MACAddress,
		}
	},
	SearchColumns: []string{"ip_address"},
	SortColumns: map[string]string{
		"id": "id", "ipaddress": "ip_address", "macaddress": "mac_address", "equipmentid": "equipment_id",
	},
	FilterColumns: []string{"equipment_id"},
}
