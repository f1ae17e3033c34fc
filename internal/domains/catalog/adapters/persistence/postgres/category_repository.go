package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository reads and stores categories in PostgreSQL using GORM.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Save(ctx context.Context, category domain.Category) (domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Category{}, err
	}
	record := categoryRecord{ID: category.ID, Name: strings.TrimSpace(category.Name)}
	if record.Name == "" {
		return domain.Category{}, errors.New("category name is required")
	}
	if err := r.db.WithContext(ctx).Save(&record).Error; err != nil {
		return domain.Category{}, err
	}
	return record.toDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toCategories(records), nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}
	var records []categoryRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return toCategories(records), nil
}

func (r *CategoryRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres category repository not configured")
	}
	return nil
}

func toCategories(records []categoryRecord) []domain.Category {
	categories := make([]domain.Category, 0, len(records))
	for _, rec := range records {
		categories = append(categories, rec.toDomain())
	}
	return categories
}
