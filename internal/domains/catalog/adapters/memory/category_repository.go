package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository is an in-memory category persistence adapter.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[int64]domain.Category
	nextID     int64
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: map[int64]domain.Category{}}
}

func (r *CategoryRepository) Save(_ context.Context, category domain.Category) (domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return domain.Category{}, errors.New("category name is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if category.ID == 0 {
		r.nextID++
		category.ID = r.nextID
	} else if category.ID > r.nextID {
		r.nextID = category.ID
	}
	r.categories[category.ID] = category
	return category, nil
}

func (r *CategoryRepository) List(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	domain.SortCategories(list)
	return list, nil
}

func (r *CategoryRepository) FindByIDs(_ context.Context, ids []int64) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := map[int64]struct{}{}
	list := make([]domain.Category, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if c, ok := r.categories[id]; ok {
			list = append(list, c)
		}
	}
	domain.SortCategories(list)
	return list, nil
}
