package orders

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName stores a new order with its price snapshots.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"

	// ErrTypeProductNotFound marks a placement rejected for an unknown product.
	ErrTypeProductNotFound = "orders.ProductNotFound"
)

// domainErrorTypes names the order errors that must not be retried.
var domainErrorTypes = map[string]error{
	"orders.InvalidClient":   domain.ErrInvalidClient,
	"orders.NoItems":         domain.ErrNoItems,
	"orders.InvalidProduct":  domain.ErrInvalidProduct,
	"orders.InvalidQuantity": domain.ErrInvalidQuantity,
	"orders.InvalidPrice":    domain.ErrInvalidPrice,
	"orders.InvalidStatus":   domain.ErrInvalidStatus,
	ErrTypeProductNotFound:   orderports.ErrProductNotFound,
	"orders.ClientNotFound":  orderports.ErrClientNotFound,
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	placer orderports.Placer
}

func NewActivities(placer orderports.Placer) *Activities {
	return &Activities{placer: placer}
}

// PlaceOrder runs the placement use case. Domain rejections are returned as
// non-retryable application errors.
func (a *Activities) PlaceOrder(ctx context.Context, cmd ordertypes.PlaceOrderCommand) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.placer == nil {
		logger.Error("order placement activity not initialized", "clientId", cmd.ClientID)
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "clientId", cmd.ClientID, "items", len(cmd.Items))
	order, err := a.placer.PlaceOrder(ctx, cmd)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "clientId", cmd.ClientID, "error", err)
		return nil, ClassifyError(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

// ClassifyError wraps known domain errors as non-retryable application errors
// and leaves every other error retryable.
func ClassifyError(err error) error {
	for errType, sentinel := range domainErrorTypes {
		if errors.Is(err, sentinel) {
			return temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
		}
	}
	return err
}

// RestoreError maps an application error type back to its domain sentinel.
// It returns nil for unknown types.
func RestoreError(errType, message string) error {
	sentinel, ok := domainErrorTypes[errType]
	if !ok {
		return nil
	}
	return fmt.Errorf("%w: %s", sentinel, message)
}
