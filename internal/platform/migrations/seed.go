package migrations

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-commerce-api/internal/platform/seed"
)

// sequenceTables own a serial id that explicit seed ids would otherwise collide with.
var sequenceTables = []string{"categories", "products", "roles", "users", "orders"}

// Seed inserts data with explicit ids, skipping rows that already exist, and
// moves each id sequence past the highest seeded id.
func Seed(ctx context.Context, db *gorm.DB, data seed.Dataset) error {
	if db == nil {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rows := range seedRows(data) {
			if rows.empty() {
				continue
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(rows.value).Error; err != nil {
				return fmt.Errorf("seed %s: %w", rows.table, err)
			}
		}
		for _, table := range sequenceTables {
			stmt := fmt.Sprintf(
				"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)",
				table,
			)
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("reset %s sequence: %w", table, err)
			}
		}
		return nil
	})
}

type seedBatch struct {
	table string
	value any
	size  int
}

func (b seedBatch) empty() bool { return b.size == 0 }

// seedRows converts the dataset into records in foreign key order.
func seedRows(data seed.Dataset) []seedBatch {
	categories := make([]categoryRecord, 0, len(data.Categories))
	for _, c := range data.Categories {
		categories = append(categories, categoryRecord{ID: c.ID, Name: c.Name})
	}

	products := make([]productRecord, 0, len(data.Products))
	var productCategories []productCategoryRecord
	for _, p := range data.Products {
		products = append(products, productRecord{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImgURL:      p.ImgURL,
		})
		for _, c := range p.Categories {
			productCategories = append(productCategories, productCategoryRecord{ProductID: p.ID, CategoryID: c.ID})
		}
	}

	roles := make([]roleRecord, 0, len(data.Roles))
	for _, r := range data.Roles {
		roles = append(roles, roleRecord{ID: r.ID, Authority: r.Authority})
	}

	users := make([]userRecord, 0, len(data.Users))
	var userRoles []userRoleRecord
	for _, u := range data.Users {
		rec := userRecord{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Password: u.PasswordHash}
		if !u.BirthDate.IsZero() {
			birth := u.BirthDate
			rec.BirthDate = &birth
		}
		users = append(users, rec)
		for _, r := range u.Roles {
			userRoles = append(userRoles, userRoleRecord{UserID: u.ID, RoleID: r.ID})
		}
	}

	orders := make([]orderRecord, 0, len(data.Orders))
	var items []orderItemRecord
	var payments []paymentRecord
	for _, o := range data.Orders {
		orders = append(orders, orderRecord{ID: o.ID, Moment: o.Moment.UTC(), Status: string(o.Status), ClientID: o.Client.ID})
		for _, item := range o.Items {
			items = append(items, orderItemRecord{OrderID: o.ID, ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
		}
		if o.Payment != nil {
			payments = append(payments, paymentRecord{OrderID: o.ID, Moment: o.Payment.Moment.UTC()})
		}
	}

	return []seedBatch{
		{table: "categories", value: &categories, size: len(categories)},
		{table: "products", value: &products, size: len(products)},
		{table: "product_categories", value: &productCategories, size: len(productCategories)},
		{table: "roles", value: &roles, size: len(roles)},
		{table: "users", value: &users, size: len(users)},
		{table: "user_roles", value: &userRoles, size: len(userRoles)},
		{table: "orders", value: &orders, size: len(orders)},
		{table: "order_items", value: &items, size: len(items)},
		{table: "payments", value: &payments, size: len(payments)},
	}
}
