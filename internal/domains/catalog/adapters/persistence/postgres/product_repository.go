package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

var sortColumns = map[string]string{
	ports.SortByID:    "id",
	ports.SortByName:  "name",
	ports.SortByPrice: "price",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ProductRepository persists products and their category links in PostgreSQL using GORM.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Save inserts the product when its ID is zero and overwrites it otherwise.
// The product row and its category links are written in one transaction.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toProductRecord(product)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ID == 0 {
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		} else {
			result := tx.Model(&productRecord{}).Where("id = ?", record.ID).Updates(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"price":       record.Price,
				"img_url":     record.ImgURL,
				"updated_at":  gorm.Expr("NOW()"),
			})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ports.ErrNotFound
			}
			if err := tx.Where("product_id = ?", record.ID).Delete(&productCategoryRecord{}).Error; err != nil {
				return err
			}
		}
		links := linkRecords(record.ID, product.Categories)
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product with its categories.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	categories, err := r.loadCategories(ctx, []int64{record.ID})
	if err != nil {
		return nil, err
	}
	return record.toDomain(categories[record.ID]), nil
}

func (r *ProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&productRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SearchByName pages products whose name contains name, ignoring case.
func (r *ProductRepository) SearchByName(ctx context.Context, name string, pageable pagination.Pageable) (pagination.Page[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	base := r.db.WithContext(ctx).Model(&productRecord{})
	if name = strings.TrimSpace(name); name != "" {
		base = base.Where("UPPER(name) LIKE UPPER(?)", "%"+likeEscaper.Replace(name)+"%")
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	var records []productRecord
	query := base
	for _, column := range orderColumns(pageable.SortOr(pagination.Order{Property: ports.SortByID, Direction: pagination.Asc})) {
		query = query.Order(column)
	}
	if err := query.Offset(pageable.Offset()).Limit(pageable.Size).Find(&records).Error; err != nil {
		return pagination.Page[*domain.Product]{}, err
	}

	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	categories, err := r.loadCategories(ctx, ids)
	if err != nil {
		return pagination.Page[*domain.Product]{}, err
	}
	products := make([]*domain.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.toDomain(categories[rec.ID]))
	}
	return pagination.NewPage(products, pageable, total), nil
}

// Delete removes the category links and the product row atomically. A foreign
// key violation from order items rolls the transaction back.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&productCategoryRecord{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&productRecord{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrNotFound
		}
		return nil
	})
	return translateError(err)
}

func (r *ProductRepository) loadCategories(ctx context.Context, productIDs []int64) (map[int64][]domain.Category, error) {
	result := make(map[int64][]domain.Category, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	var rows []productCategoryRow
	err := r.db.WithContext(ctx).
		Table("product_categories AS pc").
		Select("pc.product_id AS product_id, c.id AS id, c.name AS name").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Where("pc.product_id IN ?", productIDs).
		Order("pc.product_id, c.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ProductID] = append(result[row.ProductID], domain.Category{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func orderColumns(orders []pagination.Order) []clause.OrderByColumn {
	columns := make([]clause.OrderByColumn, 0, len(orders)+1)
	byID := false
	for _, order := range orders {
		column, ok := sortColumns[order.Property]
		if !ok {
			continue
		}
		byID = byID || column == "id"
		columns = append(columns, clause.OrderByColumn{
			Column: clause.Column{Name: column},
			Desc:   order.Direction == pagination.Desc,
		})
	}
	if !byID {
		columns = append(columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return columns
}
