package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"vtc-pricing-service/internal/config"
)

const defaultSlowQueryThreshold = 500 * time.Millisecond

// ErrSchemaMissing is returned by HealthCheck when the database answers but
// the pricing settings table does not exist yet.
var ErrSchemaMissing = errors.New("pricing schema not migrated")

// pricingTables lists the tables the repositories read from.
var pricingTables = []string{
	"organization_pricing_settings",
	"pricing_zones",
	"rse_rule_sets",
	"seasonal_multipliers",
	"advanced_rates",
	"vehicle_categories",
	"temporal_vectors",
	"optional_fees",
	"promotions",
	"fuel_price_cache",
}

func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	dbCfg := cfg.DB
	gormLog := gormlogger.New(
		zerologWriter{logger: log.With().Str("component", "gorm").Logger()},
		loggerConfig(cfg),
	)

	database, err := gorm.Open(postgres.Open(dbCfg.DSN), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("open pricing database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}

	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}

	if !dbCfg.AutoMigrate {
		log.Info().Msg("schema migration disabled")
		return database, nil
	}
	if err := runMigrations(database); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info().
		Int("statements", len(migrationStatements)).
		Strs("tables", pricingTables).
		Msg("pricing schema migrated")

	return database, nil
}

// HealthCheck backs the postgres readiness check. It fails with
// ErrSchemaMissing until the settings table exists.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	var present bool
	row := db.WithContext(ctx).Raw("SELECT to_regclass(?) IS NOT NULL", "public."+pricingTables[0]).Row()
	if err := row.Scan(&present); err != nil {
		return err
	}
	if !present {
		return ErrSchemaMissing
	}
	return nil
}

func loggerConfig(cfg *config.Config) gormlogger.Config {
	threshold := cfg.DB.SlowQueryThreshold
	if threshold <= 0 {
		threshold = defaultSlowQueryThreshold
	}
	return gormlogger.Config{
		SlowThreshold:             threshold,
		Colorful:                  false,
		IgnoreRecordNotFoundError: true,
		LogLevel:                  selectLogLevel(cfg.Environment),
	}
}

func selectLogLevel(env string) gormlogger.LogLevel {
	if env == "development" {
		return gormlogger.Info
	}
	return gormlogger.Warn
}

type zerologWriter struct {
	logger zerolog.Logger
}

func (w zerologWriter) Printf(msg string, args ...interface{}) {
	w.logger.Info().Msgf(msg, args...)
}
