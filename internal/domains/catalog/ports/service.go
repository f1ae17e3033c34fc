package ports

import (
	"context"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

// ProductService exposes product use cases to adapters.
type ProductService interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	FindAll(ctx context.Context, name string, pageable pagination.Pageable) (pagination.Page[*domain.Product], error)
	Insert(ctx context.Context, input types.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id int64, input types.ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryService exposes category use cases to adapters.
type CategoryService interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
}
