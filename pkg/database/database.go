// Package database owns the gorm connection and the protocol schema.
package database

import (
	"fmt"

	"billsplit-service/internal/model"
	"billsplit-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a postgres-backed gorm handle with the configured pool.
func Connect(dbConfig *config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dbConfig.GetDSN(),
		PreferSimpleProtocol: true, // no implicit prepared statements
	}), &gorm.Config{
		Logger: logger.Default.LogMode(dbConfig.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

// Migrate applies the protocol schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Merchant{},
		&model.BillSession{},
		&model.Participant{},
		&model.ContractState{},
		&model.Account{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
