package main

import (
	"context"
	"flag"
	"log"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	"inventory-system/seeders"

	"go.uber.org/zap"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runAdmin := flag.Bool("admin", false, "Создать администратора из SEED_ADMIN_USERNAME / SEED_ADMIN_PASSWORD")
	runDictionaries := flag.Bool("dictionaries", false, "Наполнить справочники (статусы, направления, типы оборудования)")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -dictionaries -admin)")

	flag.Parse()

	if !*runAdmin && !*runDictionaries && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -dictionaries")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	if cfg.Postgres.DSN == "" {
		log.Fatal("❌ Не задана переменная DATABASE_URL")
	}

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, zap.NewNop())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(dbPool, zap.NewNop()); err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Println("======================================================")

	if *runAll || *runDictionaries {
		if err := seeders.SeedDictionaries(ctx, dbPool); err != nil {
			log.Fatalf("❌ Ошибка наполнения справочников: %v", err)
		}
		log.Println("======================================================")
	}

	if *runAll || *runAdmin {
		if err := seeders.SeedAdmin(ctx, dbPool, cfg); err != nil {
			log.Fatalf("❌ Ошибка создания администратора: %v", err)
		}
		log.Println("======================================================")
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
