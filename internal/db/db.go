package db

import (
	"errors"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"mute-bridge/internal/config"
)

// Open connects to MariaDB and caps the connection pool.
func Open(cfg config.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConns)
	return conn, nil
}

// Migrate runs GORM auto-migrations for the core tables.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db connection is nil")
	}
	if err := conn.AutoMigrate(
		&PlayerSession{},
		&LinkedPlayer{},
		&BroadcastEvent{},
	); err != nil {
		return err
	}
	log.Println("database migration complete")
	return nil
}
