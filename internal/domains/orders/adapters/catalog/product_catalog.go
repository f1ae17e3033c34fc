package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var _ orderports.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog resolves order products from the catalog context.
type ProductCatalog struct {
	products catalogports.ProductRepository
}

func NewProductCatalog(products catalogports.ProductRepository) *ProductCatalog {
	return &ProductCatalog{products: products}
}

func (c *ProductCatalog) FindProduct(ctx context.Context, id int64) (orderports.ProductSnapshot, error) {
	if c == nil || c.products == nil {
		return orderports.ProductSnapshot{}, errors.New("product catalog not configured")
	}
	product, err := c.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return orderports.ProductSnapshot{}, fmt.Errorf("%w: id %d", orderports.ErrProductNotFound, id)
		}
		return orderports.ProductSnapshot{}, err
	}
	return orderports.ProductSnapshot{
		ID:     product.ID,
		Name:   product.Name,
		Price:  product.Price,
		ImgURL: product.ImgURL,
	}, nil
}
