package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-gin-commerce-api/internal/platform/temporal/activities/orders"
)

type stubPlacer struct {
	calls int
	err   error
}

func (s *stubPlacer) PlaceOrder(_ context.Context, cmd ordertypes.PlaceOrderCommand) (*domain.Order, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	order := &domain.Order{
		ID:     7,
		Moment: time.Date(2022, 8, 3, 14, 20, 0, 0, time.UTC),
		Status: domain.StatusWaitingPayment,
		Client: domain.Client{ID: cmd.ClientID, Name: cmd.ClientName},
	}
	for _, item := range cmd.Items {
		order.Items = append(order.Items, domain.OrderItem{ProductID: item.ProductID, Price: 90.5, Quantity: item.Quantity})
	}
	return order, nil
}

func newTestEnv(t *testing.T, placer orderports.Placer) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(OrderPlacementWorkflow, workflow.RegisterOptions{Name: OrderPlacementWorkflowName})
	activities := orderactivities.NewActivities(placer)
	env.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	return env
}

func TestOrderPlacementWorkflow_ReturnsStoredOrder(t *testing.T) {
	placer := &stubPlacer{}
	env := newTestEnv(t, placer)

	input := OrderPlacementWorkflowInput{
		Command: ordertypes.PlaceOrderCommand{
			ClientID:   1,
			ClientName: "Maria Brown",
			Items:      []ordertypes.OrderItemInput{{ProductID: 1, Quantity: 2}},
		},
		TraceID: "trace-1",
	}
	env.ExecuteWorkflow(OrderPlacementWorkflowName, input)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	require.Equal(t, int64(7), order.ID)
	require.Equal(t, 181.0, order.Total())
	require.Equal(t, 1, placer.calls)
}

func TestOrderPlacementWorkflow_DomainErrorsAreNotRetried(t *testing.T) {
	placer := &stubPlacer{err: orderports.ErrProductNotFound}
	env := newTestEnv(t, placer)

	env.ExecuteWorkflow(OrderPlacementWorkflowName, OrderPlacementWorkflowInput{
		Command: ordertypes.PlaceOrderCommand{ClientID: 1, Items: []ordertypes.OrderItemInput{{ProductID: 99, Quantity: 1}}},
	})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, orderactivities.ErrTypeProductNotFound, appErr.Type())
	require.True(t, appErr.NonRetryable())
	require.Equal(t, 1, placer.calls)

	restored := orderactivities.RestoreError(appErr.Type(), appErr.Message())
	require.ErrorIs(t, restored, orderports.ErrProductNotFound)
}
