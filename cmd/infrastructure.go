package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"fooddelivery/internal/adapters/out/broadcast"
	"fooddelivery/internal/adapters/out/postgres"

	"gorm.io/gorm"
)

// OpenDatabase connects to the configured relational backend and migrates the schema.
func OpenDatabase(cfg Config) (*gorm.DB, error) {
	dbConfig := postgres.DBConfig{Driver: cfg.DBDriver, DSN: cfg.PostgresDSN()}
	if cfg.DBDriver == postgres.DriverSQLite {
		dbConfig.DSN = cfg.SQLitePath
	}

	db, err := postgres.Open(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return db, nil
}

// NewBus builds the relay the realtime fanout travels on between replicas.
func NewBus(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (broadcast.Bus, error) {
	switch cfg.FanoutBackend {
	case FanoutRedis:
		return broadcast.NewRedisBus(ctx, cfg.RedisURL, cfg.RedisChannel)
	case FanoutAMQP:
		return broadcast.NewAMQPBus(cfg.AMQPURL, cfg.AMQPExchange, logger)
	case FanoutPostgres:
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		return broadcast.NewPGBus(ctx, sqlDB, cfg.PostgresDSN(), cfg.PGNotifyChannel, logger)
	case FanoutLocal, "":
		return broadcast.NewLocalBus(), nil
	default:
		return nil, fmt.Errorf("unsupported fanout backend %q", cfg.FanoutBackend)
	}
}
