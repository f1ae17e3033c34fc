package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

var defaultProductSort = pagination.Order{Property: ports.SortByID, Direction: pagination.Asc}

// ProductService orchestrates product use cases.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository) *ProductService {
	return &ProductService{products: products, categories: categories}
}

func (s *ProductService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// FindAll pages through products whose name contains name, ignoring case.
func (s *ProductService) FindAll(ctx context.Context, name string, pageable pagination.Pageable) (pagination.Page[*domain.Product], error) {
	for _, order := range pageable.Sort {
		if !ports.IsSortableProperty(order.Property) {
			return pagination.Page[*domain.Product]{}, fmt.Errorf("%w: cannot sort by %q", ErrInvalidInput, order.Property)
		}
	}
	pageable = pagination.NewPageable(pageable.Page, pageable.Size, pageable.SortOr(defaultProductSort)...)
	return s.products.SearchByName(ctx, name, pageable)
}

func (s *ProductService) Insert(ctx context.Context, input types.ProductInput) (*domain.Product, error) {
	categories, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return nil, mapError(err)
	}
	product, err := domain.NewProduct(0, input.Name, input.Description, input.Price, input.ImgURL, categories)
	if err != nil {
		return nil, mapError(err)
	}
	return s.products.Save(ctx, product)
}

func (s *ProductService) Update(ctx context.Context, id int64, input types.ProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.resolveCategories(ctx, input.CategoryIDs)
	if err != nil {
		return nil, mapError(err)
	}
	if err := product.Apply(input.Name, input.Description, input.Price, input.ImgURL, categories); err != nil {
		return nil, mapError(err)
	}
	return s.products.Save(ctx, product)
}

// Delete removes a product that no order item references.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	exists, err := s.products.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ports.ErrNotFound
	}
	return mapError(s.products.Delete(ctx, id))
}

func (s *ProductService) resolveCategories(ctx context.Context, ids []int64) ([]domain.Category, error) {
	if len(ids) == 0 {
		return nil, domain.ErrNoCategories
	}
	found, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := make(map[int64]domain.Category, len(found))
	for _, c := range found {
		known[c.ID] = c
	}
	resolved := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		category, ok := known[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, id)
		}
		resolved = append(resolved, category)
	}
	return resolved, nil
}

// IsDependentEntity reports whether err was caused by a referential integrity violation.
func IsDependentEntity(err error) bool {
	return errors.Is(err, ErrDependentEntity)
}

var _ ports.ProductService = (*ProductService)(nil)
