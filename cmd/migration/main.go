package main

import (
	"os"

	"recruiter/cmd/migration/initialize"
	"recruiter/cmd/migration/seed"
	"recruiter/config"
	"recruiter/internal/database"
	"recruiter/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	log := logger.New("migration")

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Er("failed to open database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := initialize.InitializeTables(db.SQL, cfg, log); err != nil {
		os.Exit(1)
	}

	if cfg.Environment == "development" {
		if err := seed.Seed(db.SQL, cfg, log); err != nil {
			os.Exit(1)
		}
	}
}
