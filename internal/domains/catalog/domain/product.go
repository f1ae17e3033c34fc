package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MinNameLength        = 3
	MaxNameLength        = 80
	MinDescriptionLength = 10
)

var (
	ErrInvalidName        = errors.New("product name must have between 3 and 80 characters")
	ErrInvalidDescription = errors.New("product description must have at least 10 characters")
	ErrInvalidPrice       = errors.New("product price must be positive")
	ErrNoCategories       = errors.New("product must have at least one category")
)

// Product models a sellable catalog item.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	ImgURL      string
	Categories  []Category
}

// NewProduct validates and constructs a Product aggregate.
func NewProduct(id int64, name, description string, price float64, imgURL string, categories []Category) (*Product, error) {
	product := &Product{ID: id}
	if err := product.Apply(name, description, price, imgURL, categories); err != nil {
		return nil, err
	}
	return product, nil
}

// Apply replaces every mutable field, enforcing the product invariants.
// The product is left untouched when validation fails.
func (p *Product) Apply(name, description string, price float64, imgURL string, categories []Category) error {
	candidate := Product{
		ID:          p.ID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Price:       price,
		ImgURL:      strings.TrimSpace(imgURL),
		Categories:  dedupeCategories(categories),
	}
	if err := candidate.Validate(); err != nil {
		return err
	}
	*p = candidate
	return nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if n := utf8.RuneCountInString(p.Name); n < MinNameLength || n > MaxNameLength {
		return ErrInvalidName
	}
	if utf8.RuneCountInString(p.Description) < MinDescriptionLength {
		return ErrInvalidDescription
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if len(p.Categories) == 0 {
		return ErrNoCategories
	}
	return nil
}

// CategoryIDs returns the ids of the product categories in stored order.
func (p *Product) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// Clone returns a deep copy.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Categories = append([]Category(nil), p.Categories...)
	return &clone
}

func dedupeCategories(categories []Category) []Category {
	seen := make(map[int64]struct{}, len(categories))
	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		result = append(result, c)
	}
	SortCategories(result)
	return result
}
