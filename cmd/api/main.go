package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/maisonarlo/storefront-backend/api/routes"
	checkoutsvc "github.com/maisonarlo/storefront-backend/internal/checkout"
	"github.com/maisonarlo/storefront-backend/internal/inventory"
	"github.com/maisonarlo/storefront-backend/internal/notifications"
	"github.com/maisonarlo/storefront-backend/internal/orders"
	paymongowebhook "github.com/maisonarlo/storefront-backend/internal/webhooks/paymongo"
	"github.com/maisonarlo/storefront-backend/pkg/config"
	"github.com/maisonarlo/storefront-backend/pkg/db"
	"github.com/maisonarlo/storefront-backend/pkg/logger"
	"github.com/maisonarlo/storefront-backend/pkg/metrics"
	"github.com/maisonarlo/storefront-backend/pkg/paymongo"
	"github.com/maisonarlo/storefront-backend/pkg/resend"
)

// A missing provider secret or database only disables the endpoints that
// need it; the rest of the API still serves. A configured-but-unreachable
// dependency is fatal.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	var dbClient *db.Client
	var dbPinger db.Pinger
	if cfg.DB.Configured() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(ctx, "error closing database", err)
			}
		}()
		dbPinger = dbClient
	} else {
		logg.Warn(ctx, "database not configured, catalog and webhook endpoints disabled")
	}

	var emailSender notifications.EmailSender
	if cfg.Resend.Configured() {
		resendClient, err := resend.NewClient(ctx, cfg.Resend, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap resend client", err)
			os.Exit(1)
		}
		emailSender = resendClient
	} else {
		logg.Warn(ctx, "resend api key not configured, email notifications disabled")
	}

	notifier, err := notifications.NewService(notifications.Params{
		Sender: emailSender,
		Resend: cfg.Resend,
		Store:  cfg.Store,
		Logger: logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create notifications service", err)
		os.Exit(1)
	}

	var inventoryService inventory.Service
	var webhookService *paymongowebhook.Service
	if dbClient != nil {
		inventoryService, err = inventory.NewService(inventory.Params{
			Repo:     inventory.NewRepository(dbClient.DB()),
			Notifier: notifier,
			Metrics:  pipelineMetrics,
			Logger:   logg,
		})
		if err != nil {
			logg.Error(ctx, "failed to create inventory service", err)
			os.Exit(1)
		}

		recorder, err := orders.NewRecorder(orders.Params{
			Repo:    orders.NewRepository(dbClient.DB()),
			Metrics: pipelineMetrics,
			Logger:  logg,
		})
		if err != nil {
			logg.Error(ctx, "failed to create order recorder", err)
			os.Exit(1)
		}

		webhookService, err = paymongowebhook.NewService(paymongowebhook.ServiceParams{
			Inventory: inventoryService,
			Recorder:  recorder,
			Notifier:  notifier,
			Metrics:   pipelineMetrics,
			Logger:    logg,
		})
		if err != nil {
			logg.Error(ctx, "failed to create webhook service", err)
			os.Exit(1)
		}
	}

	var checkoutService checkoutsvc.Service
	if cfg.PayMongo.Configured() {
		gateway, err := paymongo.NewClient(ctx, cfg.PayMongo, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap paymongo client", err)
			os.Exit(1)
		}
		checkoutService, err = checkoutsvc.NewService(checkoutsvc.Params{
			Gateway: gateway,
			Store:   cfg.Store,
			Logger:  logg,
		})
		if err != nil {
			logg.Error(ctx, "failed to create checkout service", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "paymongo secret key not configured, checkout disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbPinger, inventoryService, checkoutService, webhookService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
