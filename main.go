// @title AI Hub Backend API
// @version 1.0
// @description Backend service for the Dynamics G-Ex AI Hub training platform.

// @contact.name IT Department
// @contact.email it@dynamicsgex.com.au

// @host localhost:8080
// @BasePath /api

package main

import (
	"ai_hub_backend/internal/app"
	"ai_hub_backend/internal/config"
	"ai_hub_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	application.Run()
}
