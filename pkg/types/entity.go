package types

// BaseEntity - суррогатный ключ, общий для всех таблиц.
type BaseEntity struct {
	ID uint64 `json:"id" db:"id"`
}

func (b BaseEntity) GetID() uint64 { return b.ID }

// Entity - любая строка с id.
type Entity interface {
	GetID() uint64
}
