package application

import (
	"context"
	"errors"

	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

// Service orchestrates order use cases.
type Service struct {
	repo      ports.Repository
	identity  ports.Identity
	guard     ports.AccessGuard
	workflows ports.WorkflowOrchestrator
}

func NewService(repo ports.Repository, identity ports.Identity, guard ports.AccessGuard, workflows ports.WorkflowOrchestrator) *Service {
	return &Service{repo: repo, identity: identity, guard: guard, workflows: workflows}
}

func (s *Service) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.guard == nil {
		return nil, errors.New("order access guard not configured")
	}
	if err := s.guard.ValidateSelfOrAdmin(ctx, order.Client.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) Insert(ctx context.Context, input ordertypes.OrderInput) (*domain.Order, error) {
	if s.identity == nil || s.workflows == nil {
		return nil, errors.New("order placement not configured")
	}
	client, err := s.identity.CurrentClient(ctx)
	if err != nil {
		return nil, err
	}
	cmd := ordertypes.PlaceOrderCommand{
		ClientID:       client.ID,
		ClientName:     client.Name,
		Items:          append([]ordertypes.OrderItemInput(nil), input.Items...),
		IdempotencyKey: input.IdempotencyKey,
	}
	order, err := s.workflows.PlaceOrder(ctx, cmd)
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

var _ ports.Service = (*Service)(nil)
