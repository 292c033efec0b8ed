package common

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDb opens the sqlite database at the configured path, creating
// the parent directory on first run.
func ConnectDb(cfg *Config) (*gorm.DB, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("SQLITE_DB not set")
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	gormCfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	if !cfg.IsDevelopment() {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DBPath), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db at %s: %w", cfg.DBPath, err)
	}
	return db, nil
}
