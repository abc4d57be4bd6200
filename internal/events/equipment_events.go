package events

import "github.com/aarondl/null/v8"

const (
	EquipmentChangedName             = "equipment.changed"
	ConsumableResponsibleChangedName = "consumable.responsible.changed"
)

// EquipmentChangedEvent - у оборудования сменилась аудитория и/или ответственный.
// Заполнены только изменившиеся поля.
type EquipmentChangedEvent struct {
	EquipmentID       uint64
	RoomID            null.Uint64
	ResponsibleUserID null.Uint64
	ActorID           uint64
}

func (e EquipmentChangedEvent) Name() string { return EquipmentChangedName }

// ConsumableResponsibleChangedEvent - у расходника сменился ответственный.
type ConsumableResponsibleChangedEvent struct {
	ConsumableID      uint64
	ResponsibleUserID uint64
	ActorID           uint64
}

func (e ConsumableResponsibleChangedEvent) Name() string { return ConsumableResponsibleChangedName }
