package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts and their foreign keys.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&productCategoryRecord{},
		&roleRecord{},
		&userRecord{},
		&userRoleRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&paymentRecord{},
	); err != nil {
		return err
	}
	for _, fk := range foreignKeys {
		if err := db.Exec(fk.statement()).Error; err != nil {
			return err
		}
	}
	return nil
}

type foreignKey struct {
	name       string
	table      string
	column     string
	references string
	onDelete   string
}

// statement adds the constraint unless it already exists.
func (fk foreignKey) statement() string {
	action := ""
	if fk.onDelete != "" {
		action = " ON DELETE " + fk.onDelete
	}
	return `DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + fk.name + `') THEN
		ALTER TABLE ` + fk.table + ` ADD CONSTRAINT ` + fk.name + ` FOREIGN KEY (` + fk.column + `) REFERENCES ` + fk.references + action + `;
	END IF;
END $$;`
}

// Product rows referenced by order items cannot be deleted.
var foreignKeys = []foreignKey{
	{name: "fk_product_categories_product", table: "product_categories", column: "product_id", references: "products (id)", onDelete: "CASCADE"},
	{name: "fk_product_categories_category", table: "product_categories", column: "category_id", references: "categories (id)"},
	{name: "fk_user_roles_user", table: "user_roles", column: "user_id", references: "users (id)", onDelete: "CASCADE"},
	{name: "fk_user_roles_role", table: "user_roles", column: "role_id", references: "roles (id)"},
	{name: "fk_orders_client", table: "orders", column: "client_id", references: "users (id)"},
	{name: "fk_order_items_order", table: "order_items", column: "order_id", references: "orders (id)", onDelete: "CASCADE"},
	{name: "fk_order_items_product", table: "order_items", column: "product_id", references: "products (id)"},
	{name: "fk_payments_order", table: "payments", column: "order_id", references: "orders (id)", onDelete: "CASCADE"},
}

// Catalog schema mirrors the catalog Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type roleRecord struct {
	ID        int64  `gorm:"primaryKey;column:id"`
	Authority string `gorm:"column:authority;uniqueIndex;not null"`
}

func (roleRecord) TableName() string { return "roles" }

type userRecord struct {
	ID        int64      `gorm:"primaryKey;column:id"`
	Name      string     `gorm:"column:name;not null"`
	Email     string     `gorm:"column:email;uniqueIndex;not null"`
	Phone     string     `gorm:"column:phone"`
	BirthDate *time.Time `gorm:"column:birth_date;type:date"`
	Password  string     `gorm:"column:password_hash;not null"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

type userRoleRecord struct {
	UserID int64 `gorm:"primaryKey;column:user_id;autoIncrement:false"`
	RoleID int64 `gorm:"primaryKey;column:role_id;autoIncrement:false"`
}

func (userRoleRecord) TableName() string { return "user_roles" }

// Order schema mirrors the orders Postgres adapter.
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
