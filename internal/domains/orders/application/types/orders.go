package types

// OrderItemInput is one requested product line.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
}

// OrderInput carries the items requested by the authenticated client.
type OrderInput struct {
	Items []OrderItemInput
	// IdempotencyKey lets a retried request join the placement it already started.
	IdempotencyKey string
}

// PlaceOrderCommand is the resolved placement request. It crosses the
// workflow boundary, so every field must stay serializable.
type PlaceOrderCommand struct {
	ClientID       int64
	ClientName     string
	Items          []OrderItemInput
	IdempotencyKey string
}

// OrderIdentifier names one order.
type OrderIdentifier struct {
	ID int64
}
