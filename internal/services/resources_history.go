package services

import (
	"context"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

// Журналы заполняются и вручную, и слушателями событий.
// Время и автор по умолчанию - сейчас и текущий пользователь.

func EquipmentRoomHistoryResource(now Clock) Resource[entities.EquipmentRoomHistory] {
	return Resource[entities.EquipmentRoomHistory]{
		Name:     "equipmentroomhistory",
		NotFound: "Запись истории перемещения с ID %d не найдена",
		Messages: map[string]string{
			"EquipmentID.required": "ID оборудования должен быть положительным числом",
			"RoomID.required":      "ID аудитории должен быть положительным числом",
			"Comment.max":          "Комментарий не может превышать 1000 символов",
		},
		References: []ForeignKey[entities.EquipmentRoomHistory]{
			{Table: "equipment", Value: func(h *entities.EquipmentRoomHistory) (uint64, bool) { return requiredRef(h.EquipmentID) },
				Message: "Оборудование с ID %d не существует"},
			{Table: "rooms", Value: func(h *entities.EquipmentRoomHistory) (uint64, bool) { return requiredRef(h.RoomID) },
				Message: "Аудитория с ID %d не существует"},
			{Table: "users", Value: func(h *entities.EquipmentRoomHistory) (uint64, bool) { return optionalRef(h.MovedByUserID) },
				Message: "Пользователь с ID %d не существует"},
		},
		Prepare: func(ctx context.Context, current, next *entities.EquipmentRoomHistory) error {
			var prev entities.EquipmentRoomHistory
			if current != nil {
				prev = *current
			}
			next.MovedAt = timeOrNow(next.MovedAt, prev.MovedAt, now)
			next.MovedByUserID = actorOr(ctx, next.MovedByUserID, prev.MovedByUserID)
			return nil
		},
	}
}

func EquipmentResponsibleHistoryResource(now Clock) Resource[entities.EquipmentResponsibleHistory] {
	return Resource[entities.EquipmentResponsibleHistory]{
		Name:     "equipmentresponsiblehistory",
		NotFound: "Запись истории с ID %d не найдена",
		Messages: map[string]string{
			"EquipmentID.required":       "ID оборудования должно быть положительным числом",
			"ResponsibleUserID.required": "ID ответственного пользователя должно быть положительным числом",
			"Comment.max":                "Комментарий не может превышать 500 символов",
		},
		References: []ForeignKey[entities.EquipmentResponsibleHistory]{
			{Table: "equipment", Value: func(h *entities.EquipmentResponsibleHistory) (uint64, bool) { return requiredRef(h.EquipmentID) },
				Message: "Оборудование с ID %d не найдено"},
			{Table: "users", Value: func(h *entities.EquipmentResponsibleHistory) (uint64, bool) { return requiredRef(h.ResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
			{Table: "users", Value: func(h *entities.EquipmentResponsibleHistory) (uint64, bool) { return optionalRef(h.AssignedByUserID) },
				Message: "Пользователь, назначивший ответственного, с ID %d не найден"},
		},
		Prepare: func(ctx context.Context, current, next *entities.EquipmentResponsibleHistory) error {
			var prev entities.EquipmentResponsibleHistory
			if current != nil {
				prev = *current
			}
			next.AssignedAt = timeOrNow(next.AssignedAt, prev.AssignedAt, now)
			next.AssignedByUserID = actorOr(ctx, next.AssignedByUserID, prev.AssignedByUserID)
			return nil
		},
	}
}

func ConsumableResponsibleHistoryResource(now Clock) Resource[entities.ConsumableResponsibleHistory] {
	return Resource[entities.ConsumableResponsibleHistory]{
		Name:     "consumableresponsiblehistory",
		NotFound: "Запись истории с ID %d не найдена",
		Messages: map[string]string{
			"ConsumableID.required":      "ID расходного материала должен быть положительным числом",
			"ResponsibleUserID.required": "ID ответственного пользователя должен быть положительным числом",
			"Comment.max":                "Комментарий не может превышать 500 символов",
		},
		References: []ForeignKey[entities.ConsumableResponsibleHistory]{
			{Table: "consumables", Value: func(h *entities.ConsumableResponsibleHistory) (uint64, bool) { return requiredRef(h.ConsumableID) },
				Message: "Расходный материал с ID %d не найден"},
			{Table: "users", Value: func(h *entities.ConsumableResponsibleHistory) (uint64, bool) { return requiredRef(h.ResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
			{Table: "users", Value: func(h *entities.ConsumableResponsibleHistory) (uint64, bool) { return optionalRef(h.AssignedByUserID) },
				Message: "Пользователь, назначающий ответственного, с ID %d не найден"},
		},
		Prepare: func(ctx context.Context, current, next *entities.ConsumableResponsibleHistory) error {
			var prev entities.ConsumableResponsibleHistory
			if current != nil {
				prev = *current
			}
			next.AssignedAt = timeOrNow(next.AssignedAt, prev.AssignedAt, now)
			next.AssignedByUserID = actorOr(ctx, next.AssignedByUserID, prev.AssignedByUserID)
			return nil
		},
	}
}

func InventoryResource() Resource[entities.Inventory] {
	return Resource[entities.Inventory]{
		Name:     "inventory",
		NotFound: "Инвентаризация с ID %d не найдена",
		Messages: map[string]string{
			"Name.required": "Наименование инвентаризации обязательно для заполнения",
			"Name.max":      nameTooLong200,
		},
		Validate: func(_ context.Context, _, next *entities.Inventory) error {
			switch {
			case next.StartDate.IsZero():
				return apperrors.NewValidationError("Дата начала обязательна для заполнения")
			case next.EndDate.IsZero():
				return apperrors.NewValidationError("Дата окончания обязательна для заполнения")
			case next.StartDate.After(next.EndDate.Time):
				return apperrors.NewValidationError("Дата начала не может быть позже даты окончания")
			}
			return nil
		},
		References: []ForeignKey[entities.Inventory]{
			{Table: "users", Value: func(i *entities.Inventory) (uint64, bool) { return optionalRef(i.CreatedByUserID) },
				Message: "Пользователь с ID %d не найден"},
		},
		Relations: []RelationProbe{{Table: "inventory_checks", Column: "inventory_id"}},
		Prepare: func(ctx context.Context, current, next *entities.Inventory) error {
			var prev entities.Inventory
			if current != nil {
				prev = *current
			}
			next.CreatedByUserID = actorOr(ctx, next.CreatedByUserID, prev.CreatedByUserID)
			return nil
		},
	}
}

func InventoryCheckResource(now Clock) Resource[entities.InventoryCheck] {
	return Resource[entities.InventoryCheck]{
		Name:     "inventorycheck",
		NotFound: "Проверка инвентаризации с ID %d не найдена",
		Messages: map[string]string{
			"InventoryID.required": "ID инвентаризации должен быть положительным числом",
			"EquipmentID.required": "ID оборудования должен быть положительным числом",
			"Comment.max":          "Комментарий не может превышать 500 символов",
		},
		References: []ForeignKey[entities.InventoryCheck]{
			{Table: "inventories", Value: func(c *entities.InventoryCheck) (uint64, bool) { return requiredRef(c.InventoryID) },
				Message: "Инвентаризация с ID %d не найдена"},
			{Table: "equipment", Value: func(c *entities.InventoryCheck) (uint64, bool) { return requiredRef(c.EquipmentID) },
				Message: "Оборудование с ID %d не найдено"},
			{Table: "users", Value: func(c *entities.InventoryCheck) (uint64, bool) { return optionalRef(c.CheckedByUserID) },
				Message: "Пользователь с ID %d не найден"},
		},
		Uniques: []UniqueRule[entities.InventoryCheck]{
			pairUnique("inventory_checks", "inventory_id", "equipment_id",
				func(c *entities.InventoryCheck) (uint64, uint64) { return c.InventoryID, c.EquipmentID },
				"Данное оборудование уже прикреплено к этой инвентаризации"),
		},
		Prepare: func(ctx context.Context, current, next *entities.InventoryCheck) error {
			var prev entities.InventoryCheck
			if current != nil {
				prev = *current
			}
			next.CheckedAt = timeOrNow(next.CheckedAt, prev.CheckedAt, now)
			next.CheckedByUserID = actorOr(ctx, next.CheckedByUserID, prev.CheckedByUserID)
			return nil
		},
	}
}
