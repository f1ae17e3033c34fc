package shopserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	producthttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-gin-commerce-api/internal/shared/errors"
	"github.com/Apurer/go-gin-commerce-api/internal/shared/pagination"
)

// ProductAPI wires HTTP transport with the catalog product service.
type ProductAPI struct {
	service catalogports.ProductService
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.ProductService) ProductAPI {
	return ProductAPI{service: service}
}

// Get /products/:id
// Find product by ID
func (api *ProductAPI) FindByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}

// Get /products
// Search products by name, paginated
func (api *ProductAPI) FindAll(c *gin.Context) {
	pageable, ok := bindPageable(c)
	if !ok {
		return
	}
	page, err := api.service.FindAll(c.Request.Context(), c.Query("name"), pageable)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(page, producthttpmapper.FromDomainProductMin))
}

// Post /products
// Add a new product to the catalog
func (api *ProductAPI) Insert(c *gin.Context) {
	var payload producthttpmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	saved, err := api.service.Insert(c.Request.Context(), producthttpmapper.ToProductInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", "/products/"+strconv.FormatInt(saved.ID, 10))
	c.JSON(http.StatusCreated, producthttpmapper.FromDomainProduct(saved))
}

// Put /products/:id
// Update an existing product
func (api *ProductAPI) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload producthttpmapper.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	saved, err := api.service.Update(c.Request.Context(), id, producthttpmapper.ToProductInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(saved))
}

// Delete /products/:id
// Deletes a product
func (api *ProductAPI) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindPageable reads page, size and sort query parameters.
func bindPageable(c *gin.Context) (pagination.Pageable, bool) {
	query := c.Request.URL.Query()
	var page, size int
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return pagination.Pageable{}, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", query, &size); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return pagination.Pageable{}, false
	}
	sort, err := pagination.ParseSort(c.QueryArray("sort"))
	if err != nil {
		respondServiceError(c, err)
		return pagination.Pageable{}, false
	}
	return pagination.NewPageable(page, size, sort...), true
}
