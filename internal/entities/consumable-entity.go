package entities

import (
	"inventory-system/pkg/types"

	"github.com/aarondl/null/v8"
)

type Consumable struct {
	types.BaseEntity
	Name                  string      `json:"name" db:"name" validate:"required,max=200"`
	Description           null.String `json:"description" db:"description"`
	ArrivalDate           types.Date  `json:"arrival_date" db:"arrival_date" validate:"-"`
	Photo                 []byte      `json:"photo,omitempty" db:"photo"`
	Quantity              int64       `json:"quantity" db:"quantity" validate:"gte=0"`
	ConsumableTypeID      uint64      `json:"consumable_type_id" db:"consumable_type_id" validate:"required"`
	ResponsibleUserID     null.Uint64 `json:"responsible_user_id" db:"responsible_user_id"`
	TempResponsibleUserID null.Uint64 `json:"temp_responsible_user_id" db:"temp_responsible_user_id"`
}

// ConsumableCharacteristic - именованная характеристика типа расходника.
type ConsumableCharacteristic struct {
	types.BaseEntity
	ConsumableTypeID uint64 `json:"consumable_type_id" db:"consumable_type_id" validate:"required"`
	Name             string `json:"name" db:"name" validate:"required,max=100"`
}

// ConsumableCharacteristicValue - значение характеристики у конкретного расходника.
type ConsumableCharacteristicValue struct {
	types.BaseEntity
	ConsumableID     uint64      `json:"consumable_id" db:"consumable_id" validate:"required"`
	CharacteristicID uint64      `json:"characteristic_id" db:"characteristic_id" validate:"required"`
	Value            null.String `json:"value" db:"value" validate:"omitempty,max=500"`
}

type ConsumableEquipment struct {
	types.BaseEntity
	ConsumableID     uint64      `json:"consumable_id" db:"consumable_id" validate:"required"`
	EquipmentID      uint64      `json:"equipment_id" db:"equipment_id" validate:"required"`
	QuantityUsed     int64       `json:"quantity_used" db:"quantity_used" validate:"gte=1"`
	AttachedAt       null.Time   `json:"attached_at" db:"attached_at"`
	AttachedByUserID null.Uint64 `json:"attached_by_user_id" db:"attached_by_user_id"`
}
