package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-commerce-api/internal/domains/catalog/ports"
)

// CategoryAPI lists catalog categories.
type CategoryAPI struct {
	service catalogports.CategoryService
}

func NewCategoryAPI(service catalogports.CategoryService) CategoryAPI {
	return CategoryAPI{service: service}
}

// Get /categories
func (api *CategoryAPI) FindAll(c *gin.Context) {
	categories, err := api.service.FindAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainCategories(categories))
}
