package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	SlowQueryThreshold time.Duration
	// AutoMigrate runs the pricing schema statements at startup.
	AutoMigrate        bool
}

type AuthConfig struct {
	AccessSecret string
}

// RedisConfig enables the fuel price hot cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	FuelTTL  time.Duration
}

// MapsConfig enables routed distances when APIKey is set. Without it every
// leg is a haversine estimate.
type MapsConfig struct {
	APIKey string
	Region string
}

type FuelConfig struct {
	CountryCode        string
	StalenessThreshold time.Duration
	LookupTimeout      time.Duration
}

type PricingConfig struct {
	StaffingSelectionPolicy string
}

type Config struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Maps        MapsConfig
	Fuel        FuelConfig
	Pricing     PricingConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")

	v.AutomaticEnv()

	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("DB_SLOW_QUERY_THRESHOLD", 500*time.Millisecond)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_FUEL_TTL", 6*time.Hour)
	v.SetDefault("FUEL_COUNTRY_CODE", "FR")
	v.SetDefault("FUEL_STALENESS_THRESHOLD", 48*time.Hour)
	v.SetDefault("FUEL_LOOKUP_TIMEOUT", 2*time.Second)
	v.SetDefault("STAFFING_SELECTION_POLICY", "CHEAPEST")

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:                v.GetString("DB_DSN"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime:    v.GetDuration("DB_CONN_MAX_LIFETIME"),
			SlowQueryThreshold: v.GetDuration("DB_SLOW_QUERY_THRESHOLD"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			FuelTTL:  v.GetDuration("REDIS_FUEL_TTL"),
		},
		Maps: MapsConfig{
			APIKey: v.GetString("GOOGLE_MAPS_API_KEY"),
			Region: v.GetString("MAPS_REGION"),
		},
		Fuel: FuelConfig{
			CountryCode:        strings.ToUpper(v.GetString("FUEL_COUNTRY_CODE")),
			StalenessThreshold: v.GetDuration("FUEL_STALENESS_THRESHOLD"),
			LookupTimeout:      v.GetDuration("FUEL_LOOKUP_TIMEOUT"),
		},
		Pricing: PricingConfig{
			StaffingSelectionPolicy: strings.ToUpper(v.GetString("STAFFING_SELECTION_POLICY")),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Maps.Region == "" {
		cfg.Maps.Region = strings.ToLower(cfg.Fuel.CountryCode)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if len(cfg.Fuel.CountryCode) != 2 {
		return fmt.Errorf("FUEL_COUNTRY_CODE must be a two-letter code, got %q", cfg.Fuel.CountryCode)
	}
	if cfg.Fuel.StalenessThreshold <= 0 || cfg.Fuel.LookupTimeout <= 0 {
		return fmt.Errorf("fuel staleness threshold and lookup timeout must be positive")
	}
	switch cfg.Pricing.StaffingSelectionPolicy {
	case "CHEAPEST", "FASTEST", "PREFER_INTERNAL":
	default:
		return fmt.Errorf("STAFFING_SELECTION_POLICY %q is not supported", cfg.Pricing.StaffingSelectionPolicy)
	}
	return nil
}
