package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

func TestFindProduct(t *testing.T) {
	products := catalogmemory.NewProductRepository()
	product, err := catalogdomain.NewProduct(3, "Macbook Pro", "Lorem ipsum dolor sit amet", 1250.0, "3-big.jpg",
		[]catalogdomain.Category{{ID: 3, Name: "Computadores"}})
	require.NoError(t, err)
	_, err = products.Save(context.Background(), product)
	require.NoError(t, err)

	lookup := NewProductCatalog(products)

	snapshot, err := lookup.FindProduct(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, orderports.ProductSnapshot{ID: 3, Name: "Macbook Pro", Price: 1250.0, ImgURL: "3-big.jpg"}, snapshot)

	_, err = lookup.FindProduct(context.Background(), 4)
	require.ErrorIs(t, err, orderports.ErrProductNotFound)
}
