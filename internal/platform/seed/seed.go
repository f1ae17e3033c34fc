// Package seed holds the demo catalog, users and orders loaded on first start.
package seed

import (
	"context"
	"fmt"
	"time"

	catalogdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	orderdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
	userdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-gin-commerce-api/internal/domains/users/ports"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/security"
)

// DefaultPassword is the clear-text password of every seeded user.
const DefaultPassword = "123456"

const (
	productDescription = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat."
	imageURLPattern    = "https://raw.githubusercontent.com/devsuperior/dscatalog-resources/master/backend/img/%d-big.jpg"
)

// Dataset is a consistent set of aggregates with explicit ids.
type Dataset struct {
	Categories []catalogdomain.Category
	Products   []*catalogdomain.Product
	Roles      []userdomain.Role
	Users      []*userdomain.User
	Orders     []*orderdomain.Order
}

type productRow struct {
	name       string
	price      float64
	categories []int64
}

var products = []productRow{
	{"The Lord of the Rings", 90.5, []int64{2}},
	{"Smart TV", 2190.0, []int64{1, 3}},
	{"Macbook Pro", 1250.0, []int64{3}},
	{"PC Gamer", 1200.0, nil},
	{"Rails for Dummies", 100.99, []int64{2}},
	{"PC Gamer Ex", 1350.0, nil},
	{"PC Gamer X", 1350.0, nil},
	{"PC Gamer Alfa", 1850.0, nil},
	{"PC Gamer Tera", 1950.0, nil},
	{"PC Gamer Y", 1700.0, nil},
	{"PC Gamer Nitro", 1450.0, nil},
	{"PC Gamer Card", 1850.0, nil},
	{"PC Gamer Plus", 1350.0, nil},
	{"PC Gamer Hera", 2250.0, nil},
	{"PC Gamer Weed", 2200.0, nil},
	{"PC Gamer Max", 2340.0, nil},
	{"PC Gamer Turbo", 1280.0, nil},
	{"PC Gamer Hot", 1450.0, nil},
	{"PC Gamer Ez", 1750.0, nil},
	{"PC Gamer Tr", 1650.0, nil},
	{"PC Gamer Tx", 1680.0, nil},
	{"PC Gamer Er", 1850.0, nil},
	{"PC Gamer Min", 2250.0, nil},
	{"PC Gamer Boo", 2350.0, nil},
	{"PC Gamer Foo", 4170.0, nil},
}

// Default builds the demo dataset. Passwords are hashed with bcrypt on every call.
func Default() (Dataset, error) {
	categories := []catalogdomain.Category{
		{ID: 1, Name: "Livros"},
		{ID: 2, Name: "Eletrônicos"},
		{ID: 3, Name: "Computadores"},
	}
	byID := map[int64]catalogdomain.Category{}
	for _, c := range categories {
		byID[c.ID] = c
	}

	data := Dataset{Categories: categories}
	for i, row := range products {
		id := int64(i + 1)
		ids := row.categories
		if len(ids) == 0 {
			ids = []int64{3}
		}
		linked := make([]catalogdomain.Category, 0, len(ids))
		for _, cid := range ids {
			linked = append(linked, byID[cid])
		}
		product, err := catalogdomain.NewProduct(id, row.name, productDescription, row.price, fmt.Sprintf(imageURLPattern, id), linked)
		if err != nil {
			return Dataset{}, fmt.Errorf("seed product %d: %w", id, err)
		}
		data.Products = append(data.Products, product)
	}

	roleClient := userdomain.Role{ID: 1, Authority: security.RoleClient}
	roleAdmin := userdomain.Role{ID: 2, Authority: security.RoleAdmin}
	data.Roles = []userdomain.Role{roleClient, roleAdmin}

	hash, err := userdomain.HashPassword(DefaultPassword)
	if err != nil {
		return Dataset{}, err
	}
	maria, err := userdomain.NewUser(1, "Maria Brown", "maria@gmail.com", hash)
	if err != nil {
		return Dataset{}, err
	}
	maria.Phone = "988888888"
	maria.BirthDate = date(2001, time.July, 25)
	maria.AddRole(roleClient)

	alex, err := userdomain.NewUser(2, "Alex Green", "alex@gmail.com", hash)
	if err != nil {
		return Dataset{}, err
	}
	alex.Phone = "977777777"
	alex.BirthDate = date(1987, time.December, 13)
	alex.AddRole(roleClient)
	alex.AddRole(roleAdmin)
	data.Users = []*userdomain.User{maria, alex}

	item := func(productID int64, quantity int) orderdomain.OrderItem {
		p := data.Products[productID-1]
		return orderdomain.OrderItem{ProductID: p.ID, Name: p.Name, ImgURL: p.ImgURL, Price: p.Price, Quantity: quantity}
	}
	data.Orders = []*orderdomain.Order{
		{
			ID:      1,
			Moment:  time.Date(2022, time.July, 25, 13, 0, 0, 0, time.UTC),
			Status:  orderdomain.StatusPaid,
			Client:  orderdomain.Client{ID: maria.ID, Name: maria.Name},
			Items:   []orderdomain.OrderItem{item(1, 2), item(3, 1)},
			Payment: &orderdomain.Payment{ID: 1, Moment: time.Date(2022, time.July, 25, 15, 0, 0, 0, time.UTC)},
		},
		{
			ID:      2,
			Moment:  time.Date(2022, time.July, 29, 15, 50, 0, 0, time.UTC),
			Status:  orderdomain.StatusDelivered,
			Client:  orderdomain.Client{ID: alex.ID, Name: alex.Name},
			Items:   []orderdomain.OrderItem{item(3, 1)},
			Payment: &orderdomain.Payment{ID: 2, Moment: time.Date(2022, time.July, 30, 11, 0, 0, 0, time.UTC)},
		},
		{
			ID:     3,
			Moment: time.Date(2022, time.August, 3, 14, 20, 0, 0, time.UTC),
			Status: orderdomain.StatusWaitingPayment,
			Client: orderdomain.Client{ID: maria.ID, Name: maria.Name},
			Items:  []orderdomain.OrderItem{item(1, 1)},
		},
	}
	return data, nil
}

// Repositories receives the dataset when loading through the domain ports.
type Repositories struct {
	Categories catalogports.CategoryRepository
	Products   catalogports.ProductRepository
	Users      userports.Repository
	Orders     orderports.Repository
}

// Load stores data through repos in dependency order. Nil repositories are skipped.
func Load(ctx context.Context, data Dataset, repos Repositories) error {
	if repos.Categories != nil {
		for _, c := range data.Categories {
			if _, err := repos.Categories.Save(ctx, c); err != nil {
				return fmt.Errorf("seed category %d: %w", c.ID, err)
			}
		}
	}
	if repos.Products != nil {
		for _, p := range data.Products {
			if _, err := repos.Products.Save(ctx, p); err != nil {
				return fmt.Errorf("seed product %d: %w", p.ID, err)
			}
		}
	}
	if repos.Users != nil {
		for _, u := range data.Users {
			if _, err := repos.Users.Save(ctx, u); err != nil {
				return fmt.Errorf("seed user %d: %w", u.ID, err)
			}
		}
	}
	if repos.Orders != nil {
		for _, o := range data.Orders {
			if _, err := repos.Orders.Create(ctx, o); err != nil {
				return fmt.Errorf("seed order %d: %w", o.ID, err)
			}
		}
	}
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
