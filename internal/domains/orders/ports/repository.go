package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

var (
	ErrNotFound = errors.New("order not found")
	// ErrProductNotFound is returned when an order references an unknown product.
	ErrProductNotFound = errors.New("product not found")
	// ErrClientNotFound is returned when the ordering user no longer exists.
	ErrClientNotFound = errors.New("order client not found")
)

// Repository persists orders together with their items.
type Repository interface {
	// Create stores the order and its items atomically. A zero ID is assigned by the store.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// ReferencesProduct reports whether any order item points at productID.
	ReferencesProduct(ctx context.Context, productID int64) (bool, error)
}

// ProductSnapshot is the product state copied into an order item.
type ProductSnapshot struct {
	ID     int64
	Name   string
	Price  float64
	ImgURL string
}

// ProductCatalog resolves products for order placement.
type ProductCatalog interface {
	// FindProduct returns ErrProductNotFound when id is unknown.
	FindProduct(ctx context.Context, id int64) (ProductSnapshot, error)
}

// Identity resolves the client placing a request.
type Identity interface {
	CurrentClient(ctx context.Context) (domain.Client, error)
}

// AccessGuard authorizes access to resources owned by a user.
type AccessGuard interface {
	ValidateSelfOrAdmin(ctx context.Context, userID int64) error
}
