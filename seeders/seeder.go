package seeders

import (
	"context"
	"log"

	"inventory-system/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники, без которых неудобно заводить оборудование.
func SeedDictionaries(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Запуск наполнения справочников...")

	if err := seedNames(ctx, db, "statuses", statusesData); err != nil {
		return err
	}
	if err := seedNames(ctx, db, "directions", directionsData); err != nil {
		return err
	}
	if err := seedNames(ctx, db, "equipment_types", equipmentTypesData); err != nil {
		return err
	}

	log.Println("✅ Наполнение справочников завершено!")
	return nil
}

// SeedAdmin создает первого администратора, через которого заводятся остальные пользователи.
func SeedAdmin(ctx context.Context, db *pgxpool.Pool, cfg *config.Config) error {
	log.Println("▶️  Запуск создания администратора...")
	if err := seedAdmin(ctx, db, cfg.Seed); err != nil {
		return err
	}
	log.Println("✅ Администратор готов!")
	return nil
}
