package seeders

import (
	"context"
	"errors"
	"log"

	"inventory-system/pkg/config"
	"inventory-system/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedAdmin создает администратора из SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD.
// Пароля по умолчанию нет: без переменной сидер завершится ошибкой.
func seedAdmin(ctx context.Context, db *pgxpool.Pool, cfg config.SeedConfig) error {
	log.Printf("  - Создание администратора '%s'...", cfg.AdminUsername)
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return errors.New("не заданы SEED_ADMIN_USERNAME и/или SEED_ADMIN_PASSWORD")
	}

	var exists bool
	if err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)", cfg.AdminUsername).Scan(&exists); err != nil {
		return err
	}
	if exists {
		log.Println("    - Пользователь уже существует. Пропускаем.")
		return nil
	}

	hashedPassword, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (username, password, role, last_name, first_name) VALUES ($1, $2, 'administrator', $3, $4)`
	if _, err := db.Exec(ctx, query, cfg.AdminUsername, hashedPassword, "Администратор", "Системный"); err != nil {
		return err
	}
	return nil
}
