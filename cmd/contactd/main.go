package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/fr0stylo/proxitrace/internal/adapters/sqlite"
	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/app/services"
	"github.com/fr0stylo/proxitrace/internal/config"
	"github.com/fr0stylo/proxitrace/internal/db"
	"github.com/fr0stylo/proxitrace/internal/observability"
	"github.com/fr0stylo/proxitrace/internal/retention"
	"github.com/fr0stylo/proxitrace/internal/server"
	"github.com/fr0stylo/proxitrace/internal/server/routes"
	"github.com/fr0stylo/proxitrace/internal/transport/mqtt"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	if err := run(); err != nil {
		slog.Error("contactd stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := observability.NewLogger(os.Stdout, cfg.LogLevel, !cfg.IsLocalDevelopment())
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOpenTelemetry(ctx, log, cfg.OpenTelemetry())
	if err != nil {
		return fmt.Errorf("setup opentelemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(flushCtx); err != nil {
			log.Error("Failed to flush telemetry", "error", err)
		}
	}()

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	store := sqlite.NewContactStore(database, cfg.RetentionPeriod(),
		sqlite.WithCalibration(cfg.Matching.Calibration),
		sqlite.WithLogger(log),
	)
	aggregator := services.NewContactAggregator(cfg.ContactMatching(), nil)
	ingester := services.NewHandshakeIngestService(aggregator, store, log)
	contacts := services.NewContactService(store, store, log)

	scheduler, err := retention.NewScheduler(ctx, contacts, cfg.Retention.Schedule, cfg.Retention.Timeout, log)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.MQTT.Broker != "" {
		subscriber := mqtt.NewSubscriber(mqtt.Config{
			Broker:         cfg.MQTT.Broker,
			Username:       cfg.MQTT.Username,
			Password:       cfg.MQTT.Password,
			UseTLS:         cfg.MQTT.UseTLS,
			ClientID:       cfg.MQTT.ClientID,
			Topic:          cfg.MQTT.Topic,
			QoS:            byte(cfg.MQTT.QoS),
			HandlerTimeout: time.Minute,
			Logger:         log,
		}, func(ctx context.Context, source string, handshakes []domain.Handshake) error {
			_, err := ingester.Ingest(ctx, source, handshakes)
			return err
		})
		if err := subscriber.Start(ctx); err != nil {
			return fmt.Errorf("start mqtt subscriber: %w", err)
		}
		defer subscriber.Stop()
	} else {
		log.Warn("PROXITRACE_MQTT_BROKER not set, accepting handshakes over HTTP only")
	}

	srv := server.New(log)
	srv.RegisterRouter(routes.NewHealthRoutes(database))
	srv.RegisterRouter(routes.NewContactRoutes(contacts))
	srv.RegisterRouter(routes.NewHandshakeRoutes(ingester))

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		log.Info("Starting server", "port", cfg.Server.Port, "db", cfg.Database.Path, "retention", cfg.RetentionPeriod())
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return <-errCh
}
