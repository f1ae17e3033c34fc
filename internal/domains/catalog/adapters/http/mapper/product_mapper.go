package mapper

import (
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/domain"
)

// CategoryRef identifies a category inside a product payload.
type CategoryRef struct {
	ID   int64  `json:"id" binding:"required,gt=0"`
	Name string `json:"name,omitempty"`
}

// ProductRequest is the body accepted by product insert and update.
type ProductRequest struct {
	Name        string        `json:"name" binding:"required,min=3,max=80"`
	Description string        `json:"description" binding:"required,min=10"`
	Price       float64       `json:"price" binding:"required,gt=0"`
	ImgURL      string        `json:"imgUrl"`
	Categories  []CategoryRef `json:"categories" binding:"required,min=1,dive"`
}

// Category is the category representation.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is the full product representation.
type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	ImgURL      string     `json:"imgUrl"`
	Categories  []Category `json:"categories"`
}

// ProductMin is the listing representation.
type ProductMin struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	ImgURL string  `json:"imgUrl"`
}

// ToProductInput converts a validated request into the application input.
func ToProductInput(req ProductRequest) types.ProductInput {
	ids := make([]int64, 0, len(req.Categories))
	for _, c := range req.Categories {
		ids = append(ids, c.ID)
	}
	return types.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImgURL:      req.ImgURL,
		CategoryIDs: ids,
	}
}

func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{Categories: []Category{}}
	}
	return Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImgURL:      product.ImgURL,
		Categories:  FromDomainCategories(product.Categories),
	}
}

func FromDomainProductMin(product *domain.Product) ProductMin {
	if product == nil {
		return ProductMin{}
	}
	return ProductMin{
		ID:     product.ID,
		Name:   product.Name,
		Price:  product.Price,
		ImgURL: product.ImgURL,
	}
}

func FromDomainCategory(category domain.Category) Category {
	return Category{ID: category.ID, Name: category.Name}
}

func FromDomainCategories(categories []domain.Category) []Category {
	result := make([]Category, 0, len(categories))
	for _, c := range categories {
		result = append(result, FromDomainCategory(c))
	}
	return result
}
