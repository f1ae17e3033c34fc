package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-commerce-api/internal/app/api"
	ordercatalog "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/catalog"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/workflows/orders"
)

func main() {
	if err := api.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	const serviceName = "commerce-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, api.LoadTelemetry(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectDSN(ctx, os.Getenv("POSTGRES_DSN"), logger)
	defer cleanupDB()
	if db == nil {
		logger.Warn("worker is placing orders in process memory; the API will not see them")
	}
	repos := api.NewRepositories(db)
	placement := ordersapp.NewPlacement(repos.Orders, ordercatalog.NewProductCatalog(repos.Products))
	activities := orderactivities.NewActivities(placement)

	namespace := envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: namespace,
		Logger:    logger,
		Tracer:    instruments.Tracer("temporal-worker"),
	})
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
