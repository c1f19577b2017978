package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`CREATE TABLE IF NOT EXISTS organization_pricing_settings (
		organization_id UUID PRIMARY KEY,
		timezone VARCHAR(64) NOT NULL DEFAULT 'Europe/Paris',
		base_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		base_lng DOUBLE PRECISION NOT NULL DEFAULT 0,
		base_address TEXT,
		base_rate_per_km DOUBLE PRECISION NOT NULL,
		base_rate_per_hour DOUBLE PRECISION NOT NULL,
		minimum_fare DOUBLE PRECISION NOT NULL DEFAULT 0,
		fuel_consumption_l100km DOUBLE PRECISION NOT NULL,
		fuel_type VARCHAR(16) NOT NULL DEFAULT 'DIESEL',
		fuel_country_code VARCHAR(2) NOT NULL DEFAULT 'FR',
		toll_cost_per_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		wear_cost_per_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		driver_hourly_cost DOUBLE PRECISION NOT NULL,
		dispo_hourly_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		dispo_included_km_per_hour DOUBLE PRECISION NOT NULL DEFAULT 0,
		dispo_overage_rate_per_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		availability_included_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
		hotel_cost_per_night DOUBLE PRECISION NOT NULL DEFAULT 0,
		meal_cost_per_day DOUBLE PRECISION NOT NULL DEFAULT 0,
		staffing_selection_policy VARCHAR(32) NOT NULL DEFAULT 'CHEAPEST',
		difficulty_multipliers JSONB,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS pricing_zones (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		code VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		zone_type VARCHAR(16) NOT NULL,
		center_lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		center_lng DOUBLE PRECISION NOT NULL DEFAULT 0,
		radius_km DOUBLE PRECISION NOT NULL DEFAULT 0,
		polygon JSONB,
		price_multiplier DOUBLE PRECISION NOT NULL DEFAULT 1,
		priority INTEGER NOT NULL DEFAULT 0,
		fixed_parking_surcharge DOUBLE PRECISION NOT NULL DEFAULT 0,
		fixed_access_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT pricing_zones_code_unique UNIQUE (organization_id, code),
		CONSTRAINT pricing_zones_type_check CHECK (zone_type IN ('RADIUS', 'POLYGON'))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_pricing_zones_org ON pricing_zones (organization_id, is_active, priority DESC);`,
	`CREATE TABLE IF NOT EXISTS rse_rule_sets (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		license_category VARCHAR(16) NOT NULL,
		max_daily_driving_hours DOUBLE PRECISION NOT NULL,
		max_daily_amplitude_hours DOUBLE PRECISION NOT NULL,
		break_minutes_per_driving_block DOUBLE PRECISION NOT NULL,
		driving_block_hours_for_break DOUBLE PRECISION NOT NULL,
		capped_average_speed_kmh DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT rse_rule_sets_license_unique UNIQUE (organization_id, license_category)
	);`,
	`CREATE TABLE IF NOT EXISTS seasonal_multipliers (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		multiplier DOUBLE PRECISION NOT NULL,
		priority INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		CONSTRAINT seasonal_multipliers_range_check CHECK (end_date >= start_date)
	);`,
	`CREATE TABLE IF NOT EXISTS advanced_rates (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		applies_to VARCHAR(16) NOT NULL,
		start_time VARCHAR(5),
		end_time VARCHAR(5),
		days_of_week JSONB,
		adjustment_type VARCHAR(16) NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		priority INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);`,
	`CREATE TABLE IF NOT EXISTS vehicle_categories (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		code VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		regulatory_category VARCHAR(16) NOT NULL DEFAULT 'LIGHT',
		license_category VARCHAR(16),
		price_multiplier DOUBLE PRECISION NOT NULL DEFAULT 1,
		fuel_consumption_l100km DOUBLE PRECISION,
		CONSTRAINT vehicle_categories_code_unique UNIQUE (organization_id, code)
	);`,
	`CREATE TABLE IF NOT EXISTS temporal_vectors (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		code VARCHAR(64) NOT NULL,
		name VARCHAR(255) NOT NULL,
		minimum_duration_hours DOUBLE PRECISION NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS optional_fees (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		amount_type VARCHAR(16) NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		is_taxable BOOLEAN NOT NULL DEFAULT TRUE,
		vat_rate DOUBLE PRECISION,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);`,
	`CREATE TABLE IF NOT EXISTS promotions (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		organization_id UUID NOT NULL,
		code VARCHAR(64) NOT NULL,
		description TEXT,
		discount_type VARCHAR(16) NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_promotions_org_code ON promotions (organization_id, UPPER(code));`,
	`CREATE TABLE IF NOT EXISTS fuel_price_cache (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		country_code VARCHAR(2) NOT NULL,
		fuel_type VARCHAR(16) NOT NULL,
		price_per_litre DOUBLE PRECISION NOT NULL,
		currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
		source VARCHAR(64),
		fetched_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT fuel_price_cache_price_check CHECK (price_per_litre > 0)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_fuel_price_cache_lookup ON fuel_price_cache (country_code, fuel_type, fetched_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
