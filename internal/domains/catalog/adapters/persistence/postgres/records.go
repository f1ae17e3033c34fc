package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

// foreignKeyViolation is the SQLSTATE for a rejected foreign key reference.
const foreignKeyViolation = "23503"

type categoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

type productRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name;not null;index"`
	Description string    `gorm:"column:description;type:text"`
	Price       float64   `gorm:"column:price;not null"`
	ImgURL      string    `gorm:"column:img_url"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type productCategoryRecord struct {
	ProductID  int64 `gorm:"primaryKey;column:product_id;autoIncrement:false"`
	CategoryID int64 `gorm:"primaryKey;column:category_id;autoIncrement:false"`
}

func (productCategoryRecord) TableName() string { return "product_categories" }

// productCategoryRow is a category joined with the product it belongs to.
type productCategoryRow struct {
	ProductID int64
	ID        int64
	Name      string
}

func toProductRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImgURL:      product.ImgURL,
	}
}

func (r productRecord) toDomain(categories []domain.Category) *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImgURL:      r.ImgURL,
		Categories:  categories,
	}
}

func (r categoryRecord) toDomain() domain.Category {
	return domain.Category{ID: r.ID, Name: r.Name}
}

func linkRecords(productID int64, categories []domain.Category) []productCategoryRecord {
	links := make([]productCategoryRecord, 0, len(categories))
	for _, c := range categories {
		links = append(links, productCategoryRecord{ProductID: productID, CategoryID: c.ID})
	}
	return links
}

// translateError classifies driver errors into repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return ports.ErrIntegrityViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return ports.ErrIntegrityViolation
	}
	return err
}
