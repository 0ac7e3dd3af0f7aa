package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/leader-akash/pizza-craft/api/routes"
	"github.com/leader-akash/pizza-craft/internal/cart"
	catalogsvc "github.com/leader-akash/pizza-craft/internal/catalog"
	ordersvc "github.com/leader-akash/pizza-craft/internal/orders"
	"github.com/leader-akash/pizza-craft/pkg/config"
	"github.com/leader-akash/pizza-craft/pkg/db"
	"github.com/leader-akash/pizza-craft/pkg/logger"
	"github.com/leader-akash/pizza-craft/pkg/metrics"
	"github.com/leader-akash/pizza-craft/pkg/migrate"
	"github.com/leader-akash/pizza-craft/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	// prices serialize as JSON numbers, matching the storefront contract
	decimal.MarshalJSONWithoutQuotes = true

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Info(context.Background(), "catalog cache disabled, no redis url configured")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	catalogService, err := newCatalogService(dbClient, redisClient, cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(ordersvc.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	cartStore := cart.NewStore()

	checkoutService, err := ordersvc.NewCheckoutService(orderService, cartStore, catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient, redisClient, registry, httpMetrics,
			catalogService, cartStore, orderService, checkoutService,
		),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		if err := closeResources(server, dbClient, redisClient); err != nil {
			logg.Error(ctx, "teardown finished with errors", err)
		}
		os.Exit(1)
	case <-stop:
		logg.Info(ctx, "shutdown signal received")
	}

	if err := closeResources(server, dbClient, redisClient); err != nil {
		logg.Error(ctx, "teardown finished with errors", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func closeResources(server *http.Server, dbClient *db.Client, redisClient *redis.Client) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := dbClient.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}
	return multierr.Combine(errs...)
}

func newCatalogService(dbClient *db.Client, redisClient *redis.Client, cfg *config.Config, logg *logger.Logger) (catalogsvc.Service, error) {
	repo := catalogsvc.NewRepository(dbClient.DB())
	if redisClient == nil {
		return catalogsvc.NewService(repo, nil, cfg.Catalog.CacheTTL, logg)
	}
	return catalogsvc.NewService(repo, redisClient, cfg.Catalog.CacheTTL, logg)
}
