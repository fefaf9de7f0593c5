package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/draymaster/services/trip-planner/internal/events"
	"github.com/draymaster/services/trip-planner/internal/events/kafkabus"
	"github.com/draymaster/services/trip-planner/internal/hos"
	"github.com/draymaster/services/trip-planner/internal/platform/config"
	"github.com/draymaster/services/trip-planner/internal/platform/database"
	"github.com/draymaster/services/trip-planner/internal/platform/logger"
	"github.com/draymaster/services/trip-planner/internal/repository"
	"github.com/draymaster/services/trip-planner/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg := config.Load()
	cfg.Service.Name = "trip-planner"

	// Initialize logger
	log, err := logger.New(cfg.Service.Name, cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Infow("Starting service",
		"service", cfg.Service.Name,
		"version", Version,
		"build_time", BuildTime,
		"environment", cfg.Service.Environment,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer db.Close()
	log.Info("Connected to database")

	// Initialize Kafka producer
	producer := kafkabus.NewProducer(cfg.Kafka.Brokers, log)
	defer producer.Close()
	log.Info("Kafka producer initialized")

	// Initialize repositories
	tripRepo := repository.NewPostgresTripRepository(db.Pool)
	legRepo := repository.NewPostgresLegRepository(db.Pool)
	dailyLogRepo := repository.NewPostgresDailyLogRepository(db.Pool)

	// Initialize service with the configured HOS limits
	tripService := service.NewTripService(
		tripRepo,
		legRepo,
		dailyLogRepo,
		producer,
		plannerLimits(cfg.Planner),
		log,
	)
	// Consume plan requests; the request layer (gateway/HTTP) publishes them
	// with the route already fetched from the routing provider.
	consumer := kafkabus.NewConsumer(
		cfg.Kafka.Brokers,
		cfg.Service.Name,
		events.Topics.TripPlanRequested,
		log,
	)
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, tripService.HandlePlanRequested); err != nil && ctx.Err() == nil {
			log.Fatal("Consumer stopped", "error", err)
		}
	}()

	log.Infow("Trip planner ready",
		"topic", events.Topics.TripPlanRequested,
		"max_drive_hours", cfg.Planner.MaxDriveHours.String(),
		"cycle_limit_hours", cfg.Planner.CycleLimitHours.String(),
		"fuel_interval_miles", cfg.Planner.FuelIntervalMiles.String(),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Infow("Shutting down", "signal", sig.String())
}

// plannerLimits maps the environment-driven planner configuration onto the
// HOS limit set the core enforces.
func plannerLimits(cfg config.PlannerConfig) hos.Limits {
	return hos.Limits{
		MaxDriveHours:      cfg.MaxDriveHours,
		MaxDutyHours:       cfg.MaxDutyHours,
		BreakAfterHours:    cfg.BreakAfterHours,
		CycleLimitHours:    cfg.CycleLimitHours,
		RestBreakHours:     cfg.RestBreakHours,
		CycleResetHours:    cfg.CycleResetHours,
		MinBreakHours:      cfg.MinBreakHours,
		FuelIntervalMiles:  cfg.FuelIntervalMiles,
		FuelStopHours:      cfg.FuelStopHours,
		PickupDropoffHours: cfg.PickupDropoffHours,
	}
}
