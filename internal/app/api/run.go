package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	shopserver "github.com/Apurer/go-gin-commerce-api/go"

	catalogobs "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application"
	ordercatalog "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/catalog"
	orderidentity "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/identity"
	ordersobs "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	usersobs "github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/observability"
	usersapp "github.com/Apurer/go-gin-commerce-api/internal/domains/users/application"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/metrics"
	platformobservability "github.com/Apurer/go-gin-commerce-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

const (
	serviceName     = "commerce-api"
	metricsPath     = "/metrics"
	shutdownTimeout = 10 * time.Second
)

// Run boots the commerce HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	repos := NewRepositories(db)
	if err := repos.Prepare(ctx, cfg.SeedData, logger); err != nil {
		return err
	}

	tokens, err := security.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to configure tokens: %w", err)
	}

	userService := usersobs.New(
		usersapp.NewService(repos.Users, tokens),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)
	productService := catalogobs.New(
		catalogapp.NewProductService(repos.Products, repos.Categories),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	categoryService := catalogapp.NewCategoryService(repos.Categories)

	placement := ordersapp.NewPlacement(repos.Orders, ordercatalog.NewProductCatalog(repos.Products))
	var orderWorkflows ordersports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(placement)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled, placing orders inline")
	} else if temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
		Tracer:    instruments.Tracer("temporal-client"),
	}); err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}
	orderService := ordersobs.New(
		ordersapp.NewService(repos.Orders, orderidentity.New(userService), usersapp.NewAuthService(userService), orderWorkflows),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	handlers := shopserver.ApiHandleFunctions{
		AuthAPI:     shopserver.NewAuthAPI(userService, shopserver.ClientCredentials{ID: cfg.OAuthClientID, Secret: cfg.OAuthClientSecret}),
		CategoryAPI: shopserver.NewCategoryAPI(categoryService),
		OrderAPI:    shopserver.NewOrderAPI(orderService),
		ProductAPI:  shopserver.NewProductAPI(productService),
		UserAPI:     shopserver.NewUserAPI(userService),
		Security:    shopserver.NewSecurity(tokens),
	}

	httpMetrics := metrics.NewHTTP()
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName), httpMetrics.Middleware(metricsPath))
	router := shopserver.NewRouterWithGinEngine(engine, handlers)
	router.GET(metricsPath, gin.WrapH(httpMetrics.Handler()))

	return serve(ctx, &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}, logger)
}

func serve(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("commerce API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("commerce API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down commerce API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
