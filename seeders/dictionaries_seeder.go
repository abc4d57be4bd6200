package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// seedNames добавляет недостающие наименования в справочник, существующие не трогает.
func seedNames(ctx context.Context, db *pgxpool.Pool, table string, names []string) error {
	log.Printf("  - Наполнение таблицы '%s'...", table)

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, table)
	added := 0
	for _, name := range names {
		tag, err := tx.Exec(ctx, query, name)
		if err != nil {
			return fmt.Errorf("ошибка при вставке '%s' в %s: %w", name, table, err)
		}
		added += int(tag.RowsAffected())
	}
	log.Printf("    - Добавлено записей: %d из %d", added, len(names))

	return tx.Commit(ctx)
}
