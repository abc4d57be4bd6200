package entities

import (
	"inventory-system/pkg/types"

	"github.com/aarondl/null/v8"
)

// Справочники: id + уникальное наименование.

type EquipmentType struct {
	types.BaseEntity
	Name string `json:"name" db:"name" validate:"required,max=100"`
}

type Direction struct {
	types.BaseEntity
	Name string `json:"name" db:"name" validate:"required,max=100"`
}

type Status struct {
	types.BaseEntity
	Name string `json:"name" db:"name" validate:"required,max=100"`
}

type Developer struct {
	types.BaseEntity
	Name string `json:"name" db:"name" validate:"required,max=100,developer_name"`
}

type ConsumableType struct {
	types.BaseEntity
	Name        string      `json:"name" db:"name" validate:"required,max=100"`
	Description null.String `json:"description" db:"description"`
}

type Room struct {
	types.BaseEntity
	Name                  string      `json:"name" db:"name" validate:"required,max=100"`
	ShortName             null.String `json:"short_name" db:"short_name" validate:"omitempty,max=20"`
	ResponsibleUserID     null.Uint64 `json:"responsible_user_id" db:"responsible_user_id"`
	TempResponsibleUserID null.Uint64 `json:"temp_responsible_user_id" db:"temp_responsible_user_id"`
}
