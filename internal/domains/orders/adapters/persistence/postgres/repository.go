package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

const (
	foreignKeyViolation = "23503"
	// Constraint names as created by platform/migrations.
	clientConstraint  = "fk_orders_client"
	productConstraint = "fk_order_items_product"
)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID        int64     `gorm:"primaryKey;column:id"`
	Moment    time.Time `gorm:"column:moment;not null"`
	Status    string    `gorm:"column:status;type:varchar(32);not null"`
	ClientID  int64     `gorm:"column:client_id;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	OrderID   int64   `gorm:"primaryKey;column:order_id;autoIncrement:false"`
	ProductID int64   `gorm:"primaryKey;column:product_id;autoIncrement:false;index"`
	Quantity  int     `gorm:"column:quantity;not null"`
	Price     float64 `gorm:"column:price;not null"`
}

func (orderItemRecord) TableName() string { return "order_items" }

type paymentRecord struct {
	OrderID int64     `gorm:"primaryKey;column:order_id;autoIncrement:false"`
	Moment  time.Time `gorm:"column:moment;not null"`
}

func (paymentRecord) TableName() string { return "payments" }

// orderItemRow is an order item joined with its product.
type orderItemRow struct {
	ProductID int64
	Quantity  int
	Price     float64
	Name      string
	ImgURL    string
}

type clientRow struct {
	ID   int64
	Name string
}

// Create inserts the order, its items and its payment in one transaction.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return foreignKeyError(err, ports.ErrClientNotFound)
		}
		items := make([]orderItemRecord, 0, len(order.Items))
		for _, item := range order.Items {
			items = append(items, orderItemRecord{
				OrderID:   record.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return foreignKeyError(err, ports.ErrProductNotFound)
		}
		if order.Payment == nil {
			return nil
		}
		return tx.Create(&paymentRecord{OrderID: record.ID, Moment: order.Payment.Moment.UTC()}).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID loads an order with its client, items and payment.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	var record orderRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	var client clientRow
	if err := db.Table("users").Select("id, name").Where("id = ?", record.ClientID).Scan(&client).Error; err != nil {
		return nil, err
	}
	var items []orderItemRow
	err := db.Table("order_items AS oi").
		Select("oi.product_id, oi.quantity, oi.price, p.name, p.img_url").
		Joins("JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id = ?", record.ID).
		Order("oi.product_id").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	var payments []paymentRecord
	if err := db.Where("order_id = ?", record.ID).Limit(1).Find(&payments).Error; err != nil {
		return nil, err
	}
	return record.toDomain(client, items, payments), nil
}

func (r *Repository) ReferencesProduct(ctx context.Context, productID int64) (bool, error) {
	if err := r.ensureDB(); err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).Model(&orderItemRecord{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

// foreignKeyError names the missing parent of a failed insert. The constraint
// name decides when the driver error survives; otherwise the inserted table
// only references one parent that can be missing, given by fallback.
func foreignKeyError(err, fallback error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		switch pgErr.ConstraintName {
		case clientConstraint:
			return fmt.Errorf("%w: %s", ports.ErrClientNotFound, pgErr.Detail)
		case productConstraint:
			return fmt.Errorf("%w: %s", ports.ErrProductNotFound, pgErr.Detail)
		}
		return err
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", fallback, err)
	}
	return err
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:       order.ID,
		Moment:   order.Moment.UTC(),
		Status:   string(order.Status),
		ClientID: order.Client.ID,
	}
}

func (r orderRecord) toDomain(client clientRow, items []orderItemRow, payments []paymentRecord) *domain.Order {
	order := &domain.Order{
		ID:     r.ID,
		Moment: r.Moment.UTC(),
		Status: domain.Status(r.Status),
		Client: domain.Client{ID: r.ClientID, Name: client.Name},
		Items:  make([]domain.OrderItem, 0, len(items)),
	}
	for _, item := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			ImgURL:    item.ImgURL,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	if len(payments) > 0 {
		order.Payment = &domain.Payment{ID: payments[0].OrderID, Moment: payments[0].Moment.UTC()}
	}
	return order
}
