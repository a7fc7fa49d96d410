package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdg-garage/charity-api/internal/config"
	"github.com/gdg-garage/charity-api/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the sqlite file at path and migrates the schema.
// Timestamps are written in UTC so that stored values compare lexically.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows a single writer; one connection keeps transactions from
	// tripping over SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Registration{},
		&models.Donation{},
		&models.PaymentAttempt{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Connect(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	db, err := Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to connect to database")
	}
	log.Info().Str("path", cfg.DatabasePath).Msg("database ready")
	return db
}

// dsn turns foreign key enforcement on; cascades and SET NULL depend on it.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}
