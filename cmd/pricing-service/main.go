package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"

	"vtc-pricing-service/internal/auth"
	"vtc-pricing-service/internal/cache"
	"vtc-pricing-service/internal/config"
	"vtc-pricing-service/internal/db"
	"vtc-pricing-service/internal/fuel"
	httphandler "vtc-pricing-service/internal/http"
	"vtc-pricing-service/internal/http/middleware"
	"vtc-pricing-service/internal/logger"
	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/pricing"
	"vtc-pricing-service/internal/repository"
	"vtc-pricing-service/internal/routing"
	"vtc-pricing-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	readiness := map[string]httphandler.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return db.HealthCheck(ctx, database) },
	}

	settingsRepo := repository.NewSettingsRepository(database)
	fuelRepo := repository.NewFuelPriceRepository(database)

	var fuelStore fuel.Store = fuelRepo
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		fuelStore = cache.NewFuelPriceCache(client, fuelRepo, cfg.Redis.FuelTTL, log)
		readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.FuelTTL).Msg("fuel price cache enabled")
	}

	var router routing.Router
	if cfg.Maps.APIKey != "" {
		google, err := routing.NewGoogleRouter(cfg.Maps.APIKey, cfg.Maps.Region)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create maps client")
		}
		router = routing.NewFallbackRouter(google, routing.NewHaversineEstimator(), log)
	} else {
		log.Warn().Msg("GOOGLE_MAPS_API_KEY not set, distances are haversine estimates")
	}

	fuelPrices := fuel.NewService(fuelStore, log, fuel.Options{
		CountryCode:        cfg.Fuel.CountryCode,
		StalenessThreshold: cfg.Fuel.StalenessThreshold,
		LookupTimeout:      cfg.Fuel.LookupTimeout,
	})
	engine := pricing.NewEngine(fuelPrices, router, model.StaffingSelectionPolicy(cfg.Pricing.StaffingSelectionPolicy), log)

	pricingService := service.NewPricingService(settingsRepo, engine, log)
	complianceService := service.NewComplianceService(settingsRepo)
	fuelService := service.NewFuelPriceService(fuelPrices, fuelRepo)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(pricingService, complianceService, fuelService, readiness, log)
	server := httphandler.NewRouter(handler, middleware.Auth(tokenParser, log), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting pricing service")

	if err := server.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
