package mapper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

func TestToProductInput_CollectsCategoryIDs(t *testing.T) {
	input := ToProductInput(ProductRequest{
		Name:        "PlayStation 5",
		Description: "Lorem ipsum dolor sit amet",
		Price:       3999.0,
		Categories:  []CategoryRef{{ID: 2}, {ID: 3}},
	})
	require.Equal(t, []int64{2, 3}, input.CategoryIDs)
	require.Equal(t, 3999.0, input.Price)
}

func TestFromDomainProductMin_DropsDetail(t *testing.T) {
	product := &domain.Product{ID: 3, Name: "Macbook Pro", Description: "long text", Price: 1250.0, ImgURL: "3-big.jpg"}
	require.Equal(t, ProductMin{ID: 3, Name: "Macbook Pro", Price: 1250.0, ImgURL: "3-big.jpg"}, FromDomainProductMin(product))
}

func TestFromDomainProduct_EmptyCategoriesSerializeAsList(t *testing.T) {
	require.NotNil(t, FromDomainProduct(&domain.Product{ID: 1}).Categories)
	require.NotNil(t, FromDomainProduct(nil).Categories)
}
