package application

import (
	"context"
	"errors"
	"time"

	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

// Placement builds and stores new orders from resolved commands.
type Placement struct {
	repo     ports.Repository
	products ports.ProductCatalog
	now      func() time.Time
}

type PlacementOption func(*Placement)

// WithClock overrides the source of order moments.
func WithClock(now func() time.Time) PlacementOption {
	return func(p *Placement) {
		if now != nil {
			p.now = now
		}
	}
}

func NewPlacement(repo ports.Repository, products ports.ProductCatalog, opts ...PlacementOption) *Placement {
	p := &Placement{repo: repo, products: products, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// PlaceOrder snapshots the current price of every requested product and stores
// the order awaiting payment.
func (p *Placement) PlaceOrder(ctx context.Context, cmd ordertypes.PlaceOrderCommand) (*domain.Order, error) {
	if p == nil || p.repo == nil || p.products == nil {
		return nil, errors.New("order placement not configured")
	}
	order, err := domain.NewOrder(domain.Client{ID: cmd.ClientID, Name: cmd.ClientName}, p.now())
	if err != nil {
		return nil, mapError(err)
	}
	if len(cmd.Items) == 0 {
		return nil, mapError(domain.ErrNoItems)
	}
	for _, requested := range cmd.Items {
		product, err := p.products.FindProduct(ctx, requested.ProductID)
		if err != nil {
			return nil, err
		}
		item := domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			ImgURL:    product.ImgURL,
			Price:     product.Price,
			Quantity:  requested.Quantity,
		}
		if err := order.AddItem(item); err != nil {
			return nil, mapError(err)
		}
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	created, err := p.repo.Create(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

var _ ports.Placer = (*Placement)(nil)
