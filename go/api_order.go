package shopserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/ports"
)

const idempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders service.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Get /orders/:id
// Find order by ID, visible to its client and to administrators
func (api *OrderAPI) FindByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	order, err := api.service.FindByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Post /orders
// Place an order for the authenticated client
func (api *OrderAPI) Insert(c *gin.Context) {
	var payload orderhttpmapper.OrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := orderhttpmapper.ToOrderInput(payload)
	input.IdempotencyKey = strings.TrimSpace(c.GetHeader(idempotencyKeyHeader))
	order, err := api.service.Insert(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Location", "/orders/"+strconv.FormatInt(order.ID, 10))
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}
