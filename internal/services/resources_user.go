package services

import (
	"context"

	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/utils"

	"github.com/aarondl/null/v8"
)

// UserResource: пароль хранится только bcrypt-хешем и никогда не отдается.
// Пустой пароль при редактировании оставляет старый хеш.
// Изменение или удаление пользователя сбрасывает его закешированную сессию.
func UserResource(sessions SessionEvicter) Resource[entities.User] {
	evict := func(ctx context.Context, u *entities.User) {
		if sessions != nil && u != nil {
			sessions.EvictSession(ctx, u.ID)
		}
	}

	return Resource[entities.User]{
		Name:     "users",
		NotFound: "Пользователь с ID %d не найден",
		Messages: map[string]string{
			"Username.required":  "Логин обязателен для заполнения",
			"Username.max":       "Логин не может превышать 50 символов",
			"Username.username":  "Логин может содержать только буквы, цифры и символ подчеркивания",
			"Role":               "Роль должна быть: employee, teacher или administrator",
			"Email.email":        "Некорректный формат email",
			"Email.max":          "Email не может превышать 255 символов",
			"LastName.required":  "Фамилия обязательна для заполнения",
			"LastName.max":       "Фамилия не может превышать 50 символов",
			"FirstName.required": "Имя обязательно для заполнения",
			"FirstName.max":      "Имя не может превышать 50 символов",
			"MiddleName.max":     "Отчество не может превышать 50 символов",
			"Phone.max":          "Телефон не может превышать 20 символов",
			"Phone.phone_chars":  "Телефон может содержать только цифры, пробелы, тире, плюс и скобки",
			"Address.max":        "Адрес не может превышать 255 символов",
		},
		Validate: func(_ context.Context, current, next *entities.User) error {
			if current == nil && blank(next.Password) {
				return apperrors.NewValidationError("Пароль обязателен для заполнения")
			}
			return nil
		},
		Uniques: []UniqueRule[entities.User]{
			{
				Table: "users",
				Conditions: func(u *entities.User) []repositories.Condition {
					return []repositories.Condition{{Column: "username", Value: u.Username}}
				},
				Message: "Пользователь с таким логином уже существует",
			},
			{
				Table: "users",
				Conditions: func(u *entities.User) []repositories.Condition {
					if !u.Email.Valid || blank(u.Email.String) {
						return nil
					}
					return []repositories.Condition{{Column: "email", Value: u.Email.String, FoldCase: true}}
				},
				Message: "Пользователь с таким email уже существует",
			},
		},
		Relations: []RelationProbe{
			{Table: "rooms", Column: "responsible_user_id"},
			{Table: "rooms", Column: "temp_responsible_user_id"},
			{Table: "inventory_checks", Column: "checked_by_user_id"},
			{Table: "inventories", Column: "created_by_user_id"},
			{Table: "equipment_room_history", Column: "moved_by_user_id"},
			{Table: "equipment_responsible_history", Column: "responsible_user_id"},
			{Table: "equipment_responsible_history", Column: "assigned_by_user_id"},
			{Table: "equipment", Column: "responsible_user_id"},
			{Table: "equipment", Column: "temp_responsible_user_id"},
			{Table: "consumable_responsible_history", Column: "responsible_user_id"},
			{Table: "consumable_responsible_history", Column: "assigned_by_user_id"},
			{Table: "consumable_equipment", Column: "attached_by_user_id"},
			{Table: "consumables", Column: "responsible_user_id"},
			{Table: "consumables", Column: "temp_responsible_user_id"},
		},
		RelationsMessage: "Невозможно удалить пользователя, так как он связан с другими записями в системе",
		Prepare: func(_ context.Context, current, next *entities.User) error {
			next.Token = null.String{}
			// пустой email из формы хранится как NULL и не участвует в уникальности
			if next.Email.Valid && blank(next.Email.String) {
				next.Email = null.String{}
			}
			if blank(next.Password) {
				if current != nil {
					next.Password = current.Password
				}
				return nil
			}
			hash, err := utils.HashPassword(next.Password)
			if err != nil {
				return err
			}
			next.Password = hash
			return nil
		},
		Present: func(u *entities.User) {
			u.Password = ""
			u.Token = null.String{}
		},
		AfterWrite: func(ctx context.Context, before, _ *entities.User) {
			evict(ctx, before)
		},
		AfterDelete: evict,
	}
}
