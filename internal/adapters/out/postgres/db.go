package postgres

import (
	"fmt"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/restaurantrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DBConfig selects the relational backend. DSN is a postgres connection string or
// a sqlite file path (":memory:" for tests).
type DBConfig struct {
	Driver string
	DSN    string
}

// Open connects with driver errors translated to gorm sentinels, so unique index
// violations surface as gorm.ErrDuplicatedKey on both backends.
func Open(cfg DBConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	switch cfg.Driver {
	case DriverPostgres, "":
		return gorm.Open(gormpostgres.Open(cfg.DSN), gormConfig)
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DSN), gormConfig)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows a single writer; one connection also keeps ":memory:" shared.
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates or updates every table owned by the relational store.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userrepo.UserDTO{},
		&restaurantrepo.RestaurantDTO{},
		&restaurantrepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&orderrepo.PaymentDTO{},
	)
}
