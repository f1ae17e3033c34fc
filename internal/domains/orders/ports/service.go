package ports

import (
	"context"

	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	// FindByID returns the order when the caller owns it or holds ROLE_ADMIN.
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// Insert places an order for the authenticated client.
	Insert(ctx context.Context, input ordertypes.OrderInput) (*domain.Order, error)
}

// Placer executes a resolved placement command.
type Placer interface {
	PlaceOrder(ctx context.Context, cmd ordertypes.PlaceOrderCommand) (*domain.Order, error)
}

// WorkflowOrchestrator runs order placement, durably or inline.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, cmd ordertypes.PlaceOrderCommand) (*domain.Order, error)
}
