package domain

import (
	"errors"
	"sort"
	"time"
)

// Status enumerates order progression.
type Status string

const (
	StatusWaitingPayment Status = "WAITING_PAYMENT"
	StatusPaid           Status = "PAID"
	StatusShipped        Status = "SHIPPED"
	StatusDelivered      Status = "DELIVERED"
	StatusCanceled       Status = "CANCELED"
)

var (
	ErrInvalidClient   = errors.New("order client is required")
	ErrNoItems         = errors.New("order must have at least one item")
	ErrInvalidProduct  = errors.New("order item product id must be greater than zero")
	ErrInvalidQuantity = errors.New("order item quantity must be greater than zero")
	ErrInvalidPrice    = errors.New("order item price must not be negative")
	ErrInvalidStatus   = errors.New("order status is invalid")
)

// Client is the user owning an order.
type Client struct {
	ID   int64
	Name string
}

// Payment records when an order was paid. Its ID equals the order id.
type Payment struct {
	ID     int64
	Moment time.Time
}

// OrderItem is one product line of an order. Price is the unit price at placement time.
type OrderItem struct {
	ProductID int64
	Name      string
	ImgURL    string
	Price     float64
	Quantity  int
}

// SubTotal returns price times quantity.
func (i OrderItem) SubTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order models the purchase order aggregate.
type Order struct {
	ID      int64
	Moment  time.Time
	Status  Status
	Client  Client
	Items   []OrderItem
	Payment *Payment
}

// NewOrder opens an order awaiting payment for client at moment.
func NewOrder(client Client, moment time.Time) (*Order, error) {
	if client.ID <= 0 {
		return nil, ErrInvalidClient
	}
	return &Order{
		Moment: moment.UTC(),
		Status: StatusWaitingPayment,
		Client: client,
	}, nil
}

// AddItem appends an item. A product already on the order has its quantity increased.
func (o *Order) AddItem(item OrderItem) error {
	if err := item.validate(); err != nil {
		return err
	}
	for i := range o.Items {
		if o.Items[i].ProductID == item.ProductID {
			o.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	o.Items = append(o.Items, item)
	sort.SliceStable(o.Items, func(i, j int) bool { return o.Items[i].ProductID < o.Items[j].ProductID })
	return nil
}

// Total returns the sum of every item subtotal. It is never stored.
func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.SubTotal()
	}
	return total
}

// IsPaid reports whether a payment was recorded.
func (o *Order) IsPaid() bool {
	return o.Payment != nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.Client.ID <= 0 {
		return ErrInvalidClient
	}
	if !IsValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if err := item.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]OrderItem(nil), o.Items...)
	if o.Payment != nil {
		payment := *o.Payment
		clone.Payment = &payment
	}
	return &clone
}

func (i OrderItem) validate() error {
	if i.ProductID <= 0 {
		return ErrInvalidProduct
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// IsValidStatus reports whether status is a known order status.
func IsValidStatus(status Status) bool {
	switch status {
	case StatusWaitingPayment, StatusPaid, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	default:
		return false
	}
}
