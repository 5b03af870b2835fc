package sql

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMemoryORM opens a named in-memory sqlite database. Connections opened
// with the same name share one database; distinct names are isolated.
func NewMemoryORM(name string) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := open(sqlite.Open(dsn), "sqlite", &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// the database lives as long as one connection does; a single
	// connection also serializes writers
	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
