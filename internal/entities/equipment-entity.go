package entities

import (
	"inventory-system/pkg/types"

	"github.com/aarondl/null/v8"
)

type Model struct {
	types.BaseEntity
	Name            string `json:"name" db:"name" validate:"required,max=200"`
	EquipmentTypeID uint64 `json:"equipment_type_id" db:"equipment_type_id" validate:"required"`
}

type Software struct {
	types.BaseEntity
	Name        string      `json:"name" db:"name" validate:"required,max=200"`
	DeveloperID uint64      `json:"developer_id" db:"developer_id" validate:"required"`
	Version     null.String `json:"version" db:"version" validate:"omitempty,max=50,sw_version"`
}

type Equipment struct {
	types.BaseEntity
	Name                  string       `json:"name" db:"name" validate:"required,max=200"`
	Photo                 []byte       `json:"photo,omitempty" db:"photo"`
	InventoryNumber       int64        `json:"inventory_number" db:"inventory_number" validate:"gt=0"`
	RoomID                null.Uint64  `json:"room_id" db:"room_id"`
	ResponsibleUserID     null.Uint64  `json:"responsible_user_id" db:"responsible_user_id"`
	TempResponsibleUserID null.Uint64  `json:"temp_responsible_user_id" db:"temp_responsible_user_id"`
	Cost                  null.Float64 `json:"cost" db:"cost" validate:"omitempty,gte=0,lte=9999999999.99,money"`
	DirectionID           null.Uint64  `json:"direction_id" db:"direction_id"`
	StatusID              null.Uint64  `json:"status_id" db:"status_id"`
	ModelID               null.Uint64  `json:"model_id" db:"model_id"`
	Comment               null.String  `json:"comment" db:"comment"`
}

// EquipmentSoftware - установленное на оборудование ПО.
type EquipmentSoftware struct {
	types.BaseEntity
	EquipmentID uint64 `json:"equipment_id" db:"equipment_id" validate:"required"`
	SoftwareID  uint64 `json:"software_id" db:"software_id" validate:"required"`
}

type NetworkSettings struct {
	types.BaseEntity
	EquipmentID    uint64      `json:"equipment_id" db:"equipment_id" validate:"required"`
	IPAddress      string      `json:"ip_address" db:"ip_address" validate:"required,ipv4_octets"`
	SubnetMask     string      `json:"subnet_mask" db:"subnet_mask" validate:"required,ipv4_octets"`
	DefaultGateway null.String `json:"default_gateway" db:"default_gateway" validate:"omitempty,ipv4_octets"`
	DNSPrimary     null.String `json:"dns_primary" db:"dns_primary" validate:"omitempty,ipv4_octets"`
	DNSSecondary   null.String `json:"dns_secondary" db:"dns_secondary" validate:"omitempty,ipv4_octets"`
	MACAddress     null.String `json:"mac_address" db:"mac_address" validate:"omitempty,mac"`
}
