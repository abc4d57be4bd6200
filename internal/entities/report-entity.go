package entities

import "github.com/aarondl/null/v8"

// EquipmentRegisterItem - строка реестра оборудования для выгрузки в Excel.
type EquipmentRegisterItem struct {
	ID                uint64
	Name              string
	InventoryNumber   int64
	RoomName          null.String
	ResponsibleLast   null.String
	ResponsibleFirst  null.String
	ResponsibleMiddle null.String
	Cost              null.Float64
	StatusName        null.String
	Comment           null.String
}

// ResponsibleName - "И.О. Фамилия" или пустая строка.
func (i *EquipmentRegisterItem) ResponsibleName() string {
	if !i.ResponsibleLast.Valid {
		return ""
	}
	return ShortName(i.ResponsibleLast.String, i.ResponsibleFirst.String, i.ResponsibleMiddle.String)
}
