package mapper

import (
	"time"

	ordertypes "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/application/types"
	orderdomain "github.com/Apurer/go-gin-commerce-api/internal/domains/orders/domain"
)

// OrderItemRequest is one requested line of POST /orders.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gt=0"`
}

// OrderRequest is the body of POST /orders.
type OrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Payment struct {
	ID     int64     `json:"id"`
	Moment time.Time `json:"moment"`
}

type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	ImgURL    string  `json:"imgUrl"`
	SubTotal  float64 `json:"subTotal"`
}

// Order is the order representation. Total is computed from the items.
type Order struct {
	ID      int64       `json:"id"`
	Moment  time.Time   `json:"moment"`
	Status  string      `json:"status"`
	Client  Client      `json:"client"`
	Payment *Payment    `json:"payment"`
	Items   []OrderItem `json:"items"`
	Total   float64     `json:"total"`
}

// ToOrderInput converts the request body into the placement input.
func ToOrderInput(req OrderRequest) ordertypes.OrderInput {
	input := ordertypes.OrderInput{Items: make([]ordertypes.OrderItemInput, 0, len(req.Items))}
	for _, item := range req.Items {
		input.Items = append(input.Items, ordertypes.OrderItemInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return input
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{Items: []OrderItem{}}
	}
	out := Order{
		ID:     order.ID,
		Moment: order.Moment.UTC(),
		Status: string(order.Status),
		Client: Client{ID: order.Client.ID, Name: order.Client.Name},
		Items:  make([]OrderItem, 0, len(order.Items)),
		Total:  order.Total(),
	}
	if order.Payment != nil {
		out.Payment = &Payment{ID: order.Payment.ID, Moment: order.Payment.Moment.UTC()}
	}
	for _, item := range order.Items {
		out.Items = append(out.Items, OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			ImgURL:    item.ImgURL,
			SubTotal:  item.SubTotal(),
		})
	}
	return out
}
