package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestCommerceViews_ShapeDomainCounters(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := newMeterProvider(resource.Empty(), reader)
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })
	meter := provider.Meter("test")

	revenue, err := meter.Float64Counter(OrdersPlacedTotal)
	require.NoError(t, err)
	revenue.Add(ctx, 281.99)
	revenue.Add(ctx, 1250)

	mutations, err := meter.Int64Counter(ProductMutations)
	require.NoError(t, err)
	mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "insert"), attribute.Int64("product.id", 26)))
	mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "insert"), attribute.Int64("product.id", 27)))

	metrics := collect(t, reader)

	placed := metrics[OrdersPlacedTotal]
	require.Equal(t, "{currency}", placed.Unit)
	sum, ok := placed.Data.(metricdata.Sum[float64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	require.InDelta(t, 1531.99, sum.DataPoints[0].Value, 1e-9)

	mutated := metrics[ProductMutations]
	require.Equal(t, "{mutation}", mutated.Unit)
	counts, ok := mutated.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, counts.DataPoints, 1)
	require.Equal(t, int64(2), counts.DataPoints[0].Value)
	_, hasID := counts.DataPoints[0].Attributes.Value("product.id")
	require.False(t, hasID)
}

func TestNewResource_CarriesServiceIdentity(t *testing.T) {
	res, err := newResource(context.Background(), Settings{
		ServiceName:    "commerce-api",
		ServiceVersion: "1.2.3",
		Environment:    "staging",
	})
	require.NoError(t, err)

	attrs := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	require.Equal(t, "commerce-api", attrs["service.name"])
	require.Equal(t, "1.2.3", attrs["service.version"])
	require.Equal(t, "staging", attrs["deployment.environment"])
}
