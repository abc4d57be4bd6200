// Файл: internal/entities/user-entity.go
package entities

import (
	"strings"
	"unicode/utf8"

	"inventory-system/pkg/types"

	"github.com/aarondl/null/v8"
)

type User struct {
	types.BaseEntity
	Username string `json:"username" db:"username" validate:"required,max=50,username"`
	// Во входящем JSON - открытый пароль, в БД - bcrypt-хеш. Наружу не отдается.
	Password string `json:"password,omitempty" db:"password"`
	Role     string `json:"role" db:"role" validate:"required,oneof=employee teacher administrator"`
	// Идентификатор текущей сессии, меняется при каждом входе.
	Token      null.String `json:"-" db:"token"`
	Email      null.String `json:"email" db:"email" validate:"omitempty,email,max=255"`
	LastName   string      `json:"last_name" db:"last_name" validate:"required,max=50"`
	FirstName  string      `json:"first_name" db:"first_name" validate:"required,max=50"`
	MiddleName null.String `json:"middle_name" db:"middle_name" validate:"omitempty,max=50"`
	Phone      null.String `json:"phone" db:"phone" validate:"omitempty,max=20,phone_chars"`
	Address    null.String `json:"address" db:"address" validate:"omitempty,max=255"`
}

// FullName - "Фамилия Имя Отчество", отчество только если есть.
func (u *User) FullName() string {
	parts := []string{u.LastName, u.FirstName}
	if m := strings.TrimSpace(u.MiddleName.String); u.MiddleName.Valid && m != "" {
		parts = append(parts, m)
	}
	return strings.Join(parts, " ")
}

// ShortName - "И.О. Фамилия" для выпадающих списков.
func (u *User) ShortName() string {
	return ShortName(u.LastName, u.FirstName, u.MiddleName.String)
}

func ShortName(lastName, firstName, middleName string) string {
	var b strings.Builder
	if r, _ := utf8.DecodeRuneInString(firstName); firstName != "" {
		b.WriteRune(r)
		b.WriteString(".")
	}
	if r, _ := utf8.DecodeRuneInString(middleName); middleName != "" {
		b.WriteRune(r)
		b.WriteString(".")
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(lastName)
	return b.String()
}
