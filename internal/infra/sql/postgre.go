package sql

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	_postgresPasswordEnv = "UPKEEP_SERVER_POSTGRES_PASSWORD"
	_maxOpenConns        = 10
	_connMaxIdleTime     = 5 * time.Minute
)

// NewPosgreORM connects to postgres. The password may be kept out of the
// DSN and supplied through UPKEEP_SERVER_POSTGRES_PASSWORD.
func NewPosgreORM(dsn string) (*DB, error) {
	if pass, ok := os.LookupEnv(_postgresPasswordEnv); ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	db, err := open(postgres.Open(dsn), "postgresql", &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing postgres pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(_maxOpenConns)
	sqlDB.SetConnMaxIdleTime(_connMaxIdleTime)

	return db, nil
}
