package main

import (
	"context"
	"log"
	"os"

	"github.com/appnity/prepportal-backend/internal/config"
	"github.com/appnity/prepportal-backend/internal/database"
	"github.com/appnity/prepportal-backend/internal/migrations"
	"github.com/appnity/prepportal-backend/internal/seeds"
	"github.com/appnity/prepportal-backend/pkg/logger"
)

func main() {
	config.LoadConfig()
	logger.Init(config.AppConfig.Env)
	database.Connect()

	log.Println("Running migrations (just in case)...")
	m := migrations.NewMigrator(database.DB)
	if err := m.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}
	if err := m.Run(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	password := os.Getenv("SEED_MODERATOR_PASSWORD")
	if password == "" {
		password = "changeme123"
		log.Println("SEED_MODERATOR_PASSWORD not set, using the default password")
	}

	ctx := context.Background()
	mod, err := seeds.GetOrCreateSystemModerator(ctx, database.DB, password)
	if err != nil {
		log.Fatalf("Failed to create system moderator: %v", err)
	}

	catalog, err := seeds.DefaultCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	res, err := seeds.SeedCatalog(ctx, database.DB, catalog, mod.ID)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeding complete: %d subjects, %d content items, %d quiz questions added", res.Subjects, res.Content, res.Quiz)
}
