package api

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	catalogmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	ordermemory "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/memory"
	orderpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/persistence/postgres"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	usermemory "github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/memory"
	userpostgres "github.com/Apurer/go-gin-commerce-api/internal/domains/users/adapters/persistence/postgres"
	userports "github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/migrations"
	"github.com/Apurer/go-gin-commerce-api/internal/platform/seed"
)

// Repositories groups the persistence adapters of every bounded context.
type Repositories struct {
	Categories catalogports.CategoryRepository
	Products   catalogports.ProductRepository
	Users      userports.Repository
	Orders     orderports.Repository

	db *gorm.DB
}

// NewRepositories returns GORM adapters when db is set and in-memory adapters otherwise.
func NewRepositories(db *gorm.DB) Repositories {
	if db != nil {
		return Repositories{
			Categories: catalogpostgres.NewCategoryRepository(db),
			Products:   catalogpostgres.NewProductRepository(db),
			Users:      userpostgres.NewRepository(db),
			Orders:     orderpostgres.NewRepository(db),
			db:         db,
		}
	}
	orders := ordermemory.NewRepository()
	return Repositories{
		Categories: catalogmemory.NewCategoryRepository(),
		Products:   catalogmemory.NewProductRepository(catalogmemory.WithReferenceChecker(orders.ReferencesProduct)),
		Users:      usermemory.NewRepository(),
		Orders:     orders,
	}
}

// Prepare migrates the schema of a database backed set and loads the demo data when seedData is set.
func (r Repositories) Prepare(ctx context.Context, seedData bool, logger *slog.Logger) error {
	if r.db != nil {
		if err := migrations.Run(r.db.WithContext(ctx)); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	if !seedData {
		return nil
	}
	data, err := seed.Default()
	if err != nil {
		return fmt.Errorf("build seed data: %w", err)
	}
	if r.db != nil {
		err = migrations.Seed(ctx, r.db, data)
	} else {
		err = seed.Load(ctx, data, seed.Repositories{
			Categories: r.Categories,
			Products:   r.Products,
			Users:      r.Users,
			Orders:     r.Orders,
		})
	}
	if err != nil {
		return fmt.Errorf("seed data: %w", err)
	}
	logger.Info("demo data loaded",
		slog.Int("categories", len(data.Categories)),
		slog.Int("products", len(data.Products)),
		slog.Int("users", len(data.Users)),
		slog.Int("orders", len(data.Orders)),
	)
	return nil
}
