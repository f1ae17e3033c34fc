package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrIntegrityViolation is returned when the store refuses a write because
	// another row still references the target.
	ErrIntegrityViolation = errors.New("referential integrity violation")
)

// Sortable product properties accepted by SearchByName.
const (
	SortByID    = "id"
	SortByName  = "name"
	SortByPrice = "price"
)

// IsSortableProperty reports whether property may be used to order products.
func IsSortableProperty(property string) bool {
	switch property {
	case SortByID, SortByName, SortByPrice:
		return true
	default:
		return false
	}
}

// ProductRepository persists product aggregates with their category links.
type ProductRepository interface {
	// Save inserts the product when ID is zero and overwrites it otherwise.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Exists(ctx context.Context, id int64) (bool, error)
	// SearchByName matches name case-insensitively as a substring; an empty name matches all.
	SearchByName(ctx context.Context, name string, pageable pagination.Pageable) (pagination.Page[*domain.Product], error)
	// Delete removes the product and its category links, or returns ErrIntegrityViolation.
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository reads and stores catalog categories.
type CategoryRepository interface {
	Save(ctx context.Context, category domain.Category) (domain.Category, error)
	// List returns every category ordered by ascending id.
	List(ctx context.Context) ([]domain.Category, error)
	// FindByIDs returns the categories found for ids, in ascending id order.
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Category, error)
}
