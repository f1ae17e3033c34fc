package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ReferenceChecker reports whether some other aggregate still references a product.
type ReferenceChecker func(ctx context.Context, productID int64) (bool, error)

// ProductRepository is an in-memory product persistence adapter.
type ProductRepository struct {
	mu         sync.RWMutex
	products   map[int64]*domain.Product
	nextID     int64
	referenced ReferenceChecker
}

type ProductOption func(*ProductRepository)

// WithReferenceChecker makes Delete fail with ports.ErrIntegrityViolation
// for products the checker reports as referenced.
func WithReferenceChecker(checker ReferenceChecker) ProductOption {
	return func(r *ProductRepository) {
		r.referenced = checker
	}
}

func NewProductRepository(opts ...ProductOption) *ProductRepository {
	r := &ProductRepository{products: map[int64]*domain.Product{}}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *ProductRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := product.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	r.products[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return product.Clone(), nil
}

func (r *ProductRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.products[id]
	return ok, nil
}

func (r *ProductRepository) SearchByName(_ context.Context, name string, pageable pagination.Pageable) (pagination.Page[*domain.Product], error) {
	needle := strings.ToUpper(strings.TrimSpace(name))
	r.mu.RLock()
	matches := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if needle == "" || strings.Contains(strings.ToUpper(product.Name), needle) {
			matches = append(matches, product.Clone())
		}
	}
	r.mu.RUnlock()
	sortProducts(matches, pageable.SortOr(pagination.Order{Property: ports.SortByID, Direction: pagination.Asc}))
	return pagination.Slice(matches, pageable), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	if r.referenced != nil {
		referenced, err := r.referenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return ports.ErrIntegrityViolation
		}
	}
	delete(r.products, id)
	return nil
}

func sortProducts(products []*domain.Product, orders []pagination.Order) {
	sort.SliceStable(products, func(i, j int) bool {
		for _, order := range orders {
			cmp := compareProducts(products[i], products[j], order.Property)
			if cmp == 0 {
				continue
			}
			if order.Direction == pagination.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return products[i].ID < products[j].ID
	})
}

func compareProducts(a, b *domain.Product, property string) int {
	switch property {
	case ports.SortByName:
		return strings.Compare(a.Name, b.Name)
	case ports.SortByPrice:
		switch {
		case a.Price < b.Price:
			return -1
		case a.Price > b.Price:
			return 1
		}
		return 0
	default:
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	}
}
