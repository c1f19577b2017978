package db

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormlogger "gorm.io/gorm/logger"

	"vtc-pricing-service/internal/config"
)

func TestLoggerConfig(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		threshold     time.Duration
		wantLevel     gormlogger.LogLevel
		wantThreshold time.Duration
	}{
		{"development logs every query", "development", 0, gormlogger.Info, defaultSlowQueryThreshold},
		{"production logs warnings", "production", 2 * time.Second, gormlogger.Warn, 2 * time.Second},
		{"negative threshold falls back", "staging", -time.Second, gormlogger.Warn, defaultSlowQueryThreshold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tt.env, DB: config.DBConfig{SlowQueryThreshold: tt.threshold}}

			got := loggerConfig(cfg)
			assert.Equal(t, tt.wantLevel, got.LogLevel)
			assert.Equal(t, tt.wantThreshold, got.SlowThreshold)
			assert.True(t, got.IgnoreRecordNotFoundError)
		})
	}
}

func TestMigrationsCreateEveryPricingTable(t *testing.T) {
	schema := strings.Join(migrationStatements, "\n")
	for _, table := range pricingTables {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
	assert.Equal(t, "organization_pricing_settings", pricingTables[0])
}
