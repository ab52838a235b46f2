package database

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"recruiter/config"
	logg "recruiter/internal/logger"

	"github.com/valkey-io/valkey-go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type CacheClient valkey.Client

type Cache struct {
	// Session holds dashboard sessions (backend bearer tokens).
	Session CacheClient
	// Resource holds serialized backend resource snapshots for warm starts.
	Resource CacheClient
}

type DB struct {
	// SQL is the local link-preview store.
	SQL   *gorm.DB
	Cache Cache
	log   logg.Logger
}

func New(config config.Config) (DB, error) {
	log := logg.New("database").Function("New")

	log.Info("Initializing database")
	db := &DB{log: log}

	if err := db.initializeSQL(config); err != nil {
		return DB{}, log.Err("failed to initialize preview store", err)
	}

	if err := db.initializeCache(config); err != nil {
		return DB{}, log.Err("failed to initialize cache database", err)
	}

	return *db, nil
}

func (s *DB) initializeSQL(config config.Config) error {
	log := s.log.Function("initializeSQL")

	gormLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelInfo),
		logger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	dbPath := config.PreviewDbPath
	if dbPath == "" {
		return log.Error("preview database path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return log.Err("failed to create database directory", err, "dbPath", dbPath)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		return log.Err("failed to open database with GORM", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database from GORM", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return log.Err("failed to ping database through GORM", err)
	}

	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	s.SQL = db
	return nil
}

func (s *DB) initializeCache(config config.Config) error {
	log := s.log.Function("initializeCache")

	session, err := newCacheClient(config.CacheSessionAddress, config.CachePassword)
	if err != nil {
		return log.Err("failed to connect session cache", err, "address", config.CacheSessionAddress)
	}
	s.Cache.Session = session

	resource, err := newCacheClient(config.CacheResourceAddress, config.CachePassword)
	if err != nil {
		return log.Err("failed to connect resource cache", err, "address", config.CacheResourceAddress)
	}
	s.Cache.Resource = resource

	return nil
}

func newCacheClient(address, password string) (CacheClient, error) {
	return valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
}

func (s *DB) Close() (err error) {
	if s.SQL != nil {
		if sqlDB, dbErr := s.SQL.DB(); dbErr == nil {
			if closeErr := sqlDB.Close(); closeErr != nil {
				_ = s.log.Err("failed to close database", closeErr)
				err = closeErr
			}
		}
	}

	if s.Cache.Session != nil {
		s.Cache.Session.Close()
	}

	if s.Cache.Resource != nil {
		s.Cache.Resource.Close()
	}

	return err
}
