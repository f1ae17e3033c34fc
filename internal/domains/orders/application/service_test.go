package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/workflows"
	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var (
	errForbidden    = errors.New("access denied")
	errUnauthorized = errors.New("user not found")
	fixedNow        = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

type fakeCatalog map[int64]ports.ProductSnapshot

func (f fakeCatalog) FindProduct(_ context.Context, id int64) (ports.ProductSnapshot, error) {
	product, ok := f[id]
	if !ok {
		return ports.ProductSnapshot{}, ports.ErrProductNotFound
	}
	return product, nil
}

type fakeIdentity struct {
	client *domain.Client
}

func (f fakeIdentity) CurrentClient(context.Context) (domain.Client, error) {
	if f.client == nil {
		return domain.Client{}, errUnauthorized
	}
	return *f.client, nil
}

// fakeGuard allows the admin flag or the user with ownerID.
type fakeGuard struct {
	ownerID int64
	admin   bool
}

func (f fakeGuard) ValidateSelfOrAdmin(_ context.Context, userID int64) error {
	if f.admin || f.ownerID == userID {
		return nil
	}
	return errForbidden
}

var catalog = fakeCatalog{
	1: {ID: 1, Name: "The Lord of the Rings", Price: 90.5},
	3: {ID: 3, Name: "Macbook Pro", Price: 1250.0},
}

func newServiceFor(repo ports.Repository, client *domain.Client, guard fakeGuard) *Service {
	placement := NewPlacement(repo, catalog, WithClock(func() time.Time { return fixedNow }))
	return NewService(repo, fakeIdentity{client: client}, guard, workflows.NewInlineOrderWorkflows(placement))
}

func seedOrder(t *testing.T, repo *memory.Repository, clientID int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(domain.Client{ID: clientID}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, order.AddItem(domain.OrderItem{ProductID: 1, Price: 90.5, Quantity: 2}))
	require.NoError(t, order.AddItem(domain.OrderItem{ProductID: 3, Price: 1250.0, Quantity: 1}))
	created, err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	return created
}

func TestFindByID_OwnerAndAdmin(t *testing.T) {
	repo := memory.NewRepository()
	order := seedOrder(t, repo, 1)
	ctx := context.Background()

	found, err := newServiceFor(repo, nil, fakeGuard{ownerID: 1}).FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, 1431.0, found.Total())

	_, err = newServiceFor(repo, nil, fakeGuard{ownerID: 2, admin: true}).FindByID(ctx, order.ID)
	require.NoError(t, err)

	_, err = newServiceFor(repo, nil, fakeGuard{ownerID: 2}).FindByID(ctx, order.ID)
	require.ErrorIs(t, err, errForbidden)
}

func TestFindByID_NotFoundBeforeAuthorization(t *testing.T) {
	svc := newServiceFor(memory.NewRepository(), nil, fakeGuard{})

	_, err := svc.FindByID(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestInsert_SnapshotsPricesForAuthenticatedClient(t *testing.T) {
	repo := memory.NewRepository()
	client := &domain.Client{ID: 1, Name: "Maria Brown"}
	svc := newServiceFor(repo, client, fakeGuard{ownerID: 1})
	ctx := context.Background()

	created, err := svc.Insert(ctx, ordertypes.OrderInput{Items: []ordertypes.OrderItemInput{
		{ProductID: 3, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	}})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, domain.StatusWaitingPayment, created.Status)
	require.Equal(t, fixedNow, created.Moment)
	require.Equal(t, *client, created.Client)
	require.Equal(t, "The Lord of the Rings", created.Items[0].Name)
	require.Equal(t, 1431.0, created.Total())
	require.Nil(t, created.Payment)

	reread, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Total(), reread.Total())

	referenced, err := repo.ReferencesProduct(ctx, 3)
	require.NoError(t, err)
	require.True(t, referenced)
}

func TestInsert_UnknownProduct(t *testing.T) {
	repo := memory.NewRepository()
	svc := newServiceFor(repo, &domain.Client{ID: 1}, fakeGuard{})

	_, err := svc.Insert(context.Background(), ordertypes.OrderInput{Items: []ordertypes.OrderItemInput{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 1},
	}})
	require.ErrorIs(t, err, ports.ErrProductNotFound)

	referenced, err := repo.ReferencesProduct(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, referenced, "no partial order is stored")
}

func TestInsert_InvalidInput(t *testing.T) {
	svc := newServiceFor(memory.NewRepository(), &domain.Client{ID: 1}, fakeGuard{})
	ctx := context.Background()

	_, err := svc.Insert(ctx, ordertypes.OrderInput{})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNoItems)

	_, err = svc.Insert(ctx, ordertypes.OrderInput{Items: []ordertypes.OrderItemInput{{ProductID: 1, Quantity: 0}}})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestInsert_RequiresAuthenticatedClient(t *testing.T) {
	svc := newServiceFor(memory.NewRepository(), nil, fakeGuard{})

	_, err := svc.Insert(context.Background(), ordertypes.OrderInput{Items: []ordertypes.OrderItemInput{{ProductID: 1, Quantity: 1}}})
	require.ErrorIs(t, err, errUnauthorized)
}

type recordingWorkflows struct {
	got ordertypes.PlaceOrderCommand
}

func (r *recordingWorkflows) PlaceOrder(_ context.Context, cmd ordertypes.PlaceOrderCommand) (*domain.Order, error) {
	r.got = cmd
	return &domain.Order{ID: 1, Client: domain.Client{ID: cmd.ClientID}}, nil
}

func TestInsert_ForwardsIdempotencyKey(t *testing.T) {
	recorder := &recordingWorkflows{}
	client := &domain.Client{ID: 1, Name: "Maria Brown"}
	svc := NewService(memory.NewRepository(), fakeIdentity{client: client}, fakeGuard{}, recorder)

	_, err := svc.Insert(context.Background(), ordertypes.OrderInput{
		Items:          []ordertypes.OrderItemInput{{ProductID: 1, Quantity: 1}},
		IdempotencyKey: "cart-42",
	})
	require.NoError(t, err)
	require.Equal(t, "cart-42", recorder.got.IdempotencyKey)
	require.Equal(t, int64(1), recorder.got.ClientID)
}
