package services

import (
	"inventory-system/internal/entities"
)

const nameTooLong100 = "Наименование не может превышать 100 символов"

func EquipmentTypeResource() Resource[entities.EquipmentType] {
	return Resource[entities.EquipmentType]{
		Name:     "equipmenttype",
		NotFound: "Тип оборудования с ID %d не найден",
		Messages: map[string]string{
			"Name.required": "Наименование типа оборудования обязательно для заполнения",
			"Name.max":      nameTooLong100,
		},
		Uniques: []UniqueRule[entities.EquipmentType]{
			nameUnique("equipment_types", func(e *entities.EquipmentType) string { return e.Name }, false,
				"Наименование типа оборудования должно быть уникальным"),
		},
		Relations: []RelationProbe{{Table: "models", Column: "equipment_type_id"}},
	}
}

func DirectionResource() Resource[entities.Direction] {
	return Resource[entities.Direction]{
		Name:     "direction",
		NotFound: "Направление с ID %d не найдено",
		Messages: map[string]string{
			"Name.required": "Наименование направления обязательно для заполнения",
			"Name.max":      nameTooLong100,
		},
		Uniques: []UniqueRule[entities.Direction]{
			nameUnique("directions", func(e *entities.Direction) string { return e.Name }, false,
				"Направление с таким наименованием уже существует"),
		},
		Relations: []RelationProbe{{Table: "equipment", Column: "direction_id"}},
	}
}

func StatusResource() Resource[entities.Status] {
	return Resource[entities.Status]{
		Name:     "status",
		NotFound: "Статус с ID %d не найден",
		Messages: map[string]string{
			"Name.required": "Наименование статуса обязательно для заполнения",
			"Name.max":      "Наименование статуса не может превышать 100 символов",
		},
		Uniques: []UniqueRule[entities.Status]{
			nameUnique("statuses", func(e *entities.Status) string { return e.Name }, false,
				"Статус с таким наименованием уже существует"),
		},
		Relations: []RelationProbe{{Table: "equipment", Column: "status_id"}},
	}
}

// Разработчики сравниваются без учета регистра.
func DeveloperResource() Resource[entities.Developer] {
	return Resource[entities.Developer]{
		Name:     "developer",
		NotFound: "Разработчик с ID %d не найден",
		Messages: map[string]string{
			"Name.required":       "Наименование разработчика обязательно для заполнения",
			"Name.max":            nameTooLong100,
			"Name.developer_name": "Наименование содержит недопустимые символы",
		},
		Uniques: []UniqueRule[entities.Developer]{
			nameUnique("developers", func(e *entities.Developer) string { return e.Name }, true,
				"Разработчик с таким наименованием уже существует"),
		},
		Relations: []RelationProbe{{Table: "software", Column: "developer_id"}},
	}
}

func ConsumableTypeResource() Resource[entities.ConsumableType] {
	return Resource[entities.ConsumableType]{
		Name:     "consumabletype",
		NotFound: "Тип расходников с ID %d не найден",
		Messages: map[string]string{
			"Name.required": "Наименование типа расходников обязательно для заполнения",
			"Name.max":      nameTooLong100,
		},
		Uniques: []UniqueRule[entities.ConsumableType]{
			nameUnique("consumable_types", func(e *entities.ConsumableType) string { return e.Name }, false,
				"Наименование типа расходников должно быть уникальным"),
		},
		Relations: []RelationProbe{
			{Table: "consumables", Column: "consumable_type_id"},
			{Table: "consumable_characteristics", Column: "consumable_type_id"},
		},
	}
}

func RoomResource() Resource[entities.Room] {
	return Resource[entities.Room]{
		Name:     "room",
		NotFound: "Аудитория с ID %d не найдена",
		Messages: map[string]string{
			"Name.required": "Наименование аудитории обязательно для заполнения",
			"Name.max":      nameTooLong100,
			"ShortName.max": "Сокращенное наименование не может превышать 20 символов",
		},
		References: []ForeignKey[entities.Room]{
			{Table: "users", Value: func(r *entities.Room) (uint64, bool) { return optionalRef(r.ResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
			{Table: "users", Value: func(r *entities.Room) (uint64, bool) { return optionalRef(r.TempResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
		},
		Uniques: []UniqueRule[entities.Room]{
			nameUnique("rooms", func(e *entities.Room) string { return e.Name }, false,
				"Аудитория с таким наименованием уже существует"),
		},
		Relations: []RelationProbe{
			{Table: "equipment", Column: "room_id"},
			{Table: "equipment_room_history", Column: "room_id"},
		},
	}
}
