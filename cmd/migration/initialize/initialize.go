package initialize

import (
	"recruiter/config"
	"recruiter/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

var migrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "001_create_link_previews",
			Up: []string{`
				CREATE TABLE IF NOT EXISTS link_previews (
					url TEXT PRIMARY KEY,
					title TEXT NOT NULL DEFAULT '',
					description TEXT NOT NULL DEFAULT '',
					image_url TEXT NOT NULL DEFAULT '',
					site_name TEXT NOT NULL DEFAULT '',
					properties TEXT,
					fetched_at DATETIME NOT NULL
				)`,
			},
			Down: []string{`DROP TABLE IF EXISTS link_previews`},
		},
	},
}

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Running preview store migrations")

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to access underlying database", err)
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", migrations, migrate.Up)
	if err != nil {
		return log.Err("failed to run migrations", err)
	}

	log.Info("Migration complete", "applied", applied)
	return nil
}
