package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/freezerplan-backend/api"
	"github.com/angelmondragon/freezerplan-backend/api/routes"
	"github.com/angelmondragon/freezerplan-backend/internal/calendar"
	"github.com/angelmondragon/freezerplan-backend/internal/cart"
	"github.com/angelmondragon/freezerplan-backend/internal/catalog"
	"github.com/angelmondragon/freezerplan-backend/internal/household"
	"github.com/angelmondragon/freezerplan-backend/internal/planner"
	"github.com/angelmondragon/freezerplan-backend/pkg/config"
	"github.com/angelmondragon/freezerplan-backend/pkg/db"
	"github.com/angelmondragon/freezerplan-backend/pkg/instance"
	"github.com/angelmondragon/freezerplan-backend/pkg/logger"
	"github.com/angelmondragon/freezerplan-backend/pkg/metrics"
	"github.com/angelmondragon/freezerplan-backend/pkg/migrate"
	"github.com/angelmondragon/freezerplan-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	products, err := catalog.DefaultProducts()
	if err != nil {
		logg.Error(ctx, "failed to decode bundled catalog", err)
		os.Exit(1)
	}
	seeded, err := catalog.Seed(ctx, catalogRepo, products, true)
	if err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}
	if seeded > 0 {
		logg.Info(logg.WithField(ctx, "products", seeded), "seeded empty catalog")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	params := planner.ServiceParams{
		DB:         dbClient,
		Catalog:    catalogRepo,
		Households: household.NewRepository(dbClient.DB()),
		Plans:      cart.NewRepository(dbClient.DB()),
		Calendars:  calendar.NewRepository(dbClient.DB()),
		Metrics:    metrics.NewPlannerMetrics(reg),
		Logger:     logg,
		Config:     cfg.Planner,
	}
	routeParams := routes.Params{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Gatherer:    reg,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
	}

	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		params.Cache = redisClient
		routeParams.Cache = redisClient
	} else {
		logg.Info(ctx, "calendar cache disabled")
	}

	plannerService, err := planner.NewService(params)
	if err != nil {
		logg.Error(ctx, "failed to create planner service", err)
		os.Exit(1)
	}
	routeParams.Planner = plannerService

	server := api.NewServer(cfg, routes.NewRouter(routeParams))
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     server.Addr,
		"instance": instance.GetID(),
	})
	logg.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(shutdownCtx, "graceful shutdown failed", err)
		}
	}
}
