package entities

import (
	"inventory-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// Журналы: строки только добавляются, время по умолчанию ставит сервер.

type EquipmentRoomHistory struct {
	types.BaseEntity
	EquipmentID   uint64      `json:"equipment_id" db:"equipment_id" validate:"required"`
	RoomID        uint64      `json:"room_id" db:"room_id" validate:"required"`
	MovedAt       null.Time   `json:"moved_at" db:"moved_at"`
	MovedByUserID null.Uint64 `json:"moved_by_user_id" db:"moved_by_user_id"`
	Comment       null.String `json:"comment" db:"comment" validate:"omitempty,max=1000"`
}

type EquipmentResponsibleHistory struct {
	types.BaseEntity
	EquipmentID       uint64      `json:"equipment_id" db:"equipment_id" validate:"required"`
	ResponsibleUserID uint64      `json:"responsible_user_id" db:"responsible_user_id" validate:"required"`
	AssignedAt        null.Time   `json:"assigned_at" db:"assigned_at"`
	AssignedByUserID  null.Uint64 `json:"assigned_by_user_id" db:"assigned_by_user_id"`
	Comment           null.String `json:"comment" db:"comment" validate:"omitempty,max=500"`
}

type ConsumableResponsibleHistory struct {
	types.BaseEntity
	ConsumableID      uint64      `json:"consumable_id" db:"consumable_id" validate:"required"`
	ResponsibleUserID uint64      `json:"responsible_user_id" db:"responsible_user_id" validate:"required"`
	AssignedAt        null.Time   `json:"assigned_at" db:"assigned_at"`
	AssignedByUserID  null.Uint64 `json:"assigned_by_user_id" db:"assigned_by_user_id"`
	Comment           null.String `json:"comment" db:"comment" validate:"omitempty,max=500"`
}

// Inventory - период инвентаризации.
type Inventory struct {
	types.BaseEntity
	Name            string      `json:"name" db:"name" validate:"required,max=200"`
	StartDate       types.Date  `json:"start_date" db:"start_date" validate:"-"`
	EndDate         types.Date  `json:"end_date" db:"end_date" validate:"-"`
	CreatedByUserID null.Uint64 `json:"created_by_user_id" db:"created_by_user_id"`
}

type InventoryCheck struct {
	types.BaseEntity
	InventoryID     uint64      `json:"inventory_id" db:"inventory_id" validate:"required"`
	EquipmentID     uint64      `json:"equipment_id" db:"equipment_id" validate:"required"`
	CheckedByUserID null.Uint64 `json:"checked_by_user_id" db:"checked_by_user_id"`
	CheckedAt       null.Time   `json:"checked_at" db:"checked_at"`
	Comment         null.String `json:"comment" db:"comment" validate:"omitempty,max=500"`
}
