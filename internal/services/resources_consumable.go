package services

import (
	"context"
	"errors"

	"inventory-system/internal/entities"
	"inventory-system/internal/events"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
)

func ConsumableResource(publisher EventPublisher) Resource[entities.Consumable] {
	return Resource[entities.Consumable]{
		Name:     "consumable",
		NotFound: "Расходный материал с ID %d не найден",
		Messages: map[string]string{
			"Name.required":             "Наименование расходного материала обязательно для заполнения",
			"Name.max":                  nameTooLong200,
			"Quantity.gte":              "Количество не может быть отрицательным",
			"ConsumableTypeID.required": "Необходимо выбрать тип расходного материала",
		},
		Validate: func(_ context.Context, _, next *entities.Consumable) error {
			if next.ArrivalDate.IsZero() {
				return apperrors.NewValidationError("Дата поступления обязательна для заполнения")
			}
			return checkPhoto("consumable_photo", next.Photo)
		},
		References: []ForeignKey[entities.Consumable]{
			{Table: "consumable_types", Value: func(c *entities.Consumable) (uint64, bool) { return requiredRef(c.ConsumableTypeID) },
				Message: "Тип расходников с ID %d не найден"},
			{Table: "users", Value: func(c *entities.Consumable) (uint64, bool) { return optionalRef(c.ResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
			{Table: "users", Value: func(c *entities.Consumable) (uint64, bool) { return optionalRef(c.TempResponsibleUserID) },
				Message: "Пользователь с ID %d не найден"},
		},
		Relations: []RelationProbe{
			{Table: "consumable_characteristic_values", Column: "consumable_id"},
			{Table: "consumable_equipment", Column: "consumable_id"},
			{Table: "consumable_responsible_history", Column: "consumable_id"},
		},
		AfterWrite: func(ctx context.Context, before, after *entities.Consumable) {
			if before == nil || publisher == nil {
				return
			}
			if responsible, ok := changedRef(before.ResponsibleUserID, after.ResponsibleUserID); ok {
				publisher.Publish(ctx, events.ConsumableResponsibleChangedEvent{
					ConsumableID:      after.ID,
					ResponsibleUserID: responsible.Uint64,
					ActorID:           actorID(ctx),
				})
			}
		},
	}
}

func ConsumableCharacteristicResource() Resource[entities.ConsumableCharacteristic] {
	return Resource[entities.ConsumableCharacteristic]{
		Name:     "consumablecharacteristic",
		NotFound: "Характеристика с ID %d не найдена",
		Messages: map[string]string{
			"ConsumableTypeID.required": "ID типа расходного материала должен быть положительным числом",
			"Name.required":             "Наименование характеристики обязательно для заполнения",
			"Name.max":                  "Наименование характеристики не может превышать 100 символов",
		},
		References: []ForeignKey[entities.ConsumableCharacteristic]{
			{Table: "consumable_types", Value: func(c *entities.ConsumableCharacteristic) (uint64, bool) { return requiredRef(c.ConsumableTypeID) },
				Message: "Тип расходного материала с ID %d не существует"},
		},
		Uniques: []UniqueRule[entities.ConsumableCharacteristic]{
			{
				Table: "consumable_characteristics",
				Conditions: func(c *entities.ConsumableCharacteristic) []repositories.Condition {
					return []repositories.Condition{
						{Column: "consumable_type_id", Value: c.ConsumableTypeID},
						{Column: "name", Value: c.Name},
					}
				},
				Message: "Характеристика с таким названием уже существует для данного типа расходного материала",
			},
		},
		Relations: []RelationProbe{{Table: "consumable_characteristic_values", Column: "characteristic_id"}},
	}
}

func ConsumableCharacteristicValueResource() Resource[entities.ConsumableCharacteristicValue] {
	return Resource[entities.ConsumableCharacteristicValue]{
		Name:     "consumablecharacteristicvalue",
		NotFound: "Характеристика с ID %d не найдена",
		Messages: map[string]string{
			"ConsumableID.required":     "ID расходного материала должен быть положительным числом",
			"CharacteristicID.required": "ID характеристики должен быть положительным числом",
			"Value.max":                 "Значение характеристики не может превышать 500 символов",
		},
		References: []ForeignKey[entities.ConsumableCharacteristicValue]{
			{Table: "consumables", Value: func(v *entities.ConsumableCharacteristicValue) (uint64, bool) { return requiredRef(v.ConsumableID) },
				Message: "Расходный материал с ID %d не найден"},
			{Table: "consumable_characteristics", Value: func(v *entities.ConsumableCharacteristicValue) (uint64, bool) {
				return requiredRef(v.CharacteristicID)
			},
				Message: "Характеристика с ID %d не найдена"},
		},
		Uniques: []UniqueRule[entities.ConsumableCharacteristicValue]{
			pairUnique("consumable_characteristic_values", "consumable_id", "characteristic_id",
				func(v *entities.ConsumableCharacteristicValue) (uint64, uint64) { return v.ConsumableID, v.CharacteristicID },
				"Характеристика уже прикреплена к данному расходному материалу"),
		},
	}
}

// ConsumableEquipmentResource: при прикреплении остаток расходника должен покрывать
// quantity_used. Остаток при этом не списывается.
func ConsumableEquipmentResource(lookup repositories.LookupRepositoryInterface, now Clock) Resource[entities.ConsumableEquipment] {
	return Resource[entities.ConsumableEquipment]{
		Name:     "consumableequipment",
		NotFound: "Прикрепление расходника к оборудованию с ID %d не найдено",
		Messages: map[string]string{
			"ConsumableID.required": "ID расходного материала должен быть положительным числом",
			"EquipmentID.required":  "ID оборудования должен быть положительным числом",
			"QuantityUsed":          "Количество использованных единиц должно быть положительным числом",
		},
		Validate: func(ctx context.Context, current, next *entities.ConsumableEquipment) error {
			if current != nil {
				return nil
			}
			available, err := lookup.IntColumn(ctx, "consumables", "quantity", next.ConsumableID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("Расходный материал с ID %d не найден", next.ConsumableID)
			}
			if err != nil {
				return err
			}
			if available < next.QuantityUsed {
				return apperrors.NewValidationError(
					"Недостаточно расходного материала. Доступно: %d, требуется: %d", available, next.QuantityUsed)
			}
			return nil
		},
		References: []ForeignKey[entities.ConsumableEquipment]{
			{Table: "consumables", Value: func(c *entities.ConsumableEquipment) (uint64, bool) { return requiredRef(c.ConsumableID) },
				Message: "Расходный материал с ID %d не найден"},
			{Table: "equipment", Value: func(c *entities.ConsumableEquipment) (uint64, bool) { return requiredRef(c.EquipmentID) },
				Message: "Оборудование с ID %d не найдено"},
			{Table: "users", Value: func(c *entities.ConsumableEquipment) (uint64, bool) { return optionalRef(c.AttachedByUserID) },
				Message: "Пользователь с ID %d не найден"},
		},
		Uniques: []UniqueRule[entities.ConsumableEquipment]{
			pairUnique("consumable_equipment", "consumable_id", "equipment_id",
				func(c *entities.ConsumableEquipment) (uint64, uint64) { return c.ConsumableID, c.EquipmentID },
				"Этот расходный материал уже прикреплен к данному оборудованию"),
		},
		Prepare: func(ctx context.Context, current, next *entities.ConsumableEquipment) error {
			var prev entities.ConsumableEquipment
			if current != nil {
				prev = *current
			}
			next.AttachedAt = timeOrNow(next.AttachedAt, prev.AttachedAt, now)
			next.AttachedByUserID = actorOr(ctx, next.AttachedByUserID, prev.AttachedByUserID)
			return nil
		},
	}
}
