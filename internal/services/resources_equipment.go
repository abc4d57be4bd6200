package services

import (
	"context"

	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
)

const nameTooLong200 = "Наименование не может превышать 200 символов"

func ModelResource() Resource[entities.Model] {
	return Resource[entities.Model]{
		Name:     "model",
		NotFound: "Модель с ID %d не найдена",
		Messages: map[string]string{
			"Name.required":            "Наименование модели обязательно для заполнения",
			"Name.max":                 nameTooLong200,
			"EquipmentTypeID.required": "Необходимо выбрать тип оборудования",
		},
		References: []ForeignKey[entities.Model]{
			{Table: "equipment_types", Value: func(m *entities.Model) (uint64, bool) { return requiredRef(m.EquipmentTypeID) },
				Message: "Указанный тип оборудования не существует"},
		},
		Uniques: []UniqueRule[entities.Model]{
			nameUnique("models", func(m *entities.Model) string { return m.Name }, false,
				"Модель с таким наименованием уже существует"),
		},
		Relations: []RelationProbe{{Table: "equipment", Column: "model_id"}},
	}
}

func SoftwareResource() Resource[entities.Software] {
	return Resource[entities.Software]{
		Name:     "software",
		NotFound: "Программное обеспечение с ID %d не найдено",
		Messages: map[string]string{
			"Name.required":        "Наименование программного обеспечения обязательно для заполнения",
			"Name.max":             nameTooLong200,
			"DeveloperID.required": "ID разработчика должен быть положительным числом",
			"Version.max":          "Версия не может превышать 50 символов",
			"Version.sw_version":   "Версия может содержать только буквы, цифры, точки, дефисы и пробелы",
		},
		References: []ForeignKey[entities.Software]{
			{Table: "developers", Value: func(s *entities.Software) (uint64, bool) { return requiredRef(s.DeveloperID) },
				Message: "Разработчик с ID %d не найден"},
		},
		Relations: []RelationProbe{{Table: "equipment_software", Column: "software_id"}},
	}
}

// EquipmentResource: смена аудитории или ответственного при редактировании
// публикует событие, по которому дописываются журналы.
func EquipmentResource(publisher EventPublisher) Resource[entities.Equipment] {
	return Resource[entities.Equipment]{
		Name:     "equipment",
		NotFound: "Оборудование с ID %d не найдено",
		Messages: map[string]string{
			"Name.required":      "Наименование оборудования обязательно для заполнения",
			"Name.max":           nameTooLong200,
			"InventoryNumber.gt": "Инвентарный номер должен быть положительным числом",
			"Cost.gte":           "Стоимость не может быть отрицательной",
			"Cost.lte":           "Стоимость не может превышать 9 999 999 999,99",
			"Cost.money":         "Стоимость может содержать не более двух знаков после запятой",
		},
		Validate: func(_ context.Context, _, next *entities.Equipment) error {
			return checkPhoto("equipment_photo", next.Photo)
		},
		References: []ForeignKey[entities.Equipment]{
			{Table: "rooms", Value: func(e *entities.Equipment) (uint64, bool) { return optionalRef(e.RoomID) },
				Message: "Аудитория с ID %d не найдена"},
			{Table: "users", Value: func(e *entities.Equipment) (uint64, bool) { return optionalRef(e.ResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
			{Table: "users", Value: func(e *entities.Equipment) (uint64, bool) { return optionalRef(e.TempResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
			{Table: "directions", Value: func(e *entities.Equipment) (uint64, bool) { return optionalRef(e.DirectionID) },
				Message: "Направление с ID %d не найдено"},
			{Table: "statuses", Value: func(e *entities.Equipment) (uint64, bool) { return optionalRef(e.StatusID) },
				Message: "Статус с ID %d не найден"},
			{Table: "models", Value: func(e *entities.Equipment) (uint64, bool) { return optionalRef(e.ModelID) },
				Message: "Модель с ID %d не найдена"},
		},
		Uniques: []UniqueRule[entities.Equipment]{
			{
				Table: "equipment",
				Conditions: func(e *entities.Equipment) []repositories.Condition {
					return []repositories.Condition{{Column: "inventory_number", Value: e.InventoryNumber}}
				},
				Message: "Инвентарный номер должен быть уникальным",
			},
		},
		Relations: []RelationProbe{
			{Table: "equipment_software", Column: "equipment_id"},
			{Table: "consumable_equipment", Column: "equipment_id"},
			{Table: "equipment_responsible_history", Column: "equipment_id"},
			{Table: "equipment_room_history", Column: "equipment_id"},
			{Table: "inventory_checks", Column: "equipment_id"},
			{Table: "network_settings", Column: "equipment_id"},
		},
		AfterWrite: func(ctx context.Context, before, after *entities.Equipment) {
			if before == nil || publisher == nil {
				return
			}
			room, moved := changedRef(before.RoomID, after.RoomID)
			responsible, reassigned := changedRef(before.ResponsibleUserID, after.ResponsibleUserID)
			if !moved && !reassigned {
				return
			}
			publisher.Publish(ctx, events.EquipmentChangedEvent{
				EquipmentID:       after.ID,
				RoomID:            room,
				ResponsibleUserID: responsible,
				ActorID:           actorID(ctx),
			})
		},
	}
}

func EquipmentSoftwareResource() Resource[entities.EquipmentSoftware] {
	return Resource[entities.EquipmentSoftware]{
		Name:     "equipmentsoftware",
		NotFound: "Запись о прикреплении ПО с ID %d не найдена",
		Messages: map[string]string{
			"EquipmentID.required": "ID оборудования должен быть положительным числом",
			"SoftwareID.required":  "ID программного обеспечения должен быть положительным числом",
		},
		References: []ForeignKey[entities.EquipmentSoftware]{
			{Table: "equipment", Value: func(e *entities.EquipmentSoftware) (uint64, bool) { return requiredRef(e.EquipmentID) },
				Message: "Оборудование с ID %d не существует"},
			{Table: "software", Value: func(e *entities.EquipmentSoftware) (uint64, bool) { return requiredRef(e.SoftwareID) },
				Message: "Программное обеспечение с ID %d не существует"},
		},
		Uniques: []UniqueRule[entities.EquipmentSoftware]{
			pairUnique("equipment_software", "equipment_id", "software_id",
				func(e *entities.EquipmentSoftware) (uint64, uint64) { return e.EquipmentID, e.SoftwareID },
				"Данное программное обеспечение уже прикреплено к этому оборудованию"),
		},
	}
}

const ipFormatHint = "Используйте формат: XXX.XXX.XXX.XXX, где XXX от 0 до 255"

func NetworkSettingsResource() Resource[entities.NetworkSettings] {
	return Resource[entities.NetworkSettings]{
		Name:     "networksettings",
		NotFound: "Сетевая настройка с ID %d не найдена",
		Messages: map[string]string{
			"EquipmentID.required":       "ID оборудования должен быть положительным числом",
			"IPAddress.required":         "IP адрес обязателен для заполнения",
			"IPAddress.ipv4_octets":      "Неверный формат IP адреса. " + ipFormatHint,
			"SubnetMask.required":        "Маска подсети обязательна для заполнения",
			"SubnetMask.ipv4_octets":     "Неверный формат маски подсети. " + ipFormatHint,
			"DefaultGateway.ipv4_octets": "Неверный формат шлюза по умолчанию. " + ipFormatHint,
			"DNSPrimary.ipv4_octets":     "Неверный формат основного DNS. " + ipFormatHint,
			"DNSSecondary.ipv4_octets":   "Неверный формат вторичного DNS. " + ipFormatHint,
			"MACAddress.mac":             "Неверный формат MAC адреса. Используйте формат: XX:XX:XX:XX:XX:XX или XX-XX-XX-XX-XX-XX",
		},
		References: []ForeignKey[entities.NetworkSettings]{
			{Table: "equipment", Value: func(n *entities.NetworkSettings) (uint64, bool) { return requiredRef(n.EquipmentID) },
				Message: "Оборудование с ID %d не найдено"},
		},
		Uniques: []UniqueRule[entities.NetworkSettings]{
			{
				Table: "network_settings",
				Conditions: func(n *entities.NetworkSettings) []repositories.Condition {
					return []repositories.Condition{{Column: "ip_address", Value: n.IPAddress}}
				},
				Message: "IP адрес должен быть уникальным",
			},
		},
	}
}
