package application

import (
	"context"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

// CategoryService lists catalog categories.
type CategoryService struct {
	repo ports.CategoryRepository
}

func NewCategoryService(repo ports.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// FindAll returns every category in ascending id order.
func (s *CategoryService) FindAll(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortCategories(categories)
	return categories, nil
}

var _ ports.CategoryService = (*CategoryService)(nil)
