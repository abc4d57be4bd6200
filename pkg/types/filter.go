package types

import "strings"

// ListQuery - параметры выборки списка.
// Пример: /api/equipment?search=Монитор&sortBy=inventory_number&sortOrder=desc&filter[room_id]=3
type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Filter    map[string]interface{}
	// 0 - без ограничения
	Limit  uint64
	Offset uint64
}

// Descending - любое значение кроме desc трактуется как asc.
func (q ListQuery) Descending() bool {
	return strings.EqualFold(q.SortOrder, "desc")
}

// DropdownItem - элемент выпадающего списка на клиенте.
type DropdownItem struct {
	ID          uint64 `json:"id"`
	DisplayText string `json:"display_text"`
}
