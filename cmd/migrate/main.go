package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Apurer/go-gin-commerce-api/internal/app/api"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/migrations"
	platformpostgres "github.com/Apurer/go-gin-commerce-api/internal/platform/postgres"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/seed"
)

func main() {
	withSeed := flag.Bool("seed", false, "load the demo catalog, users and orders after migrating")
	flag.Parse()
	if err := api.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set; nothing to migrate")
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}
	logger.Info("schema migrated")

	if !*withSeed {
		return
	}
	data, err := seed.Default()
	if err != nil {
		log.Fatalf("failed to build seed data: %v", err)
	}
	if err := migrations.Seed(ctx, db, data); err != nil {
		log.Fatalf("failed to seed data: %v", err)
	}
	logger.Info("demo data loaded", slog.Int("products", len(data.Products)), slog.Int("orders", len(data.Orders)))
}
