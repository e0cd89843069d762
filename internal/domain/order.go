package domain

import "time"

const FulfillmentStatusPending = "pending"

// OrderLine is the permanent, purchased counterpart of a CartLine.
// CartLineIDs is the candidate set used to find pre-checkout transport
// allocations for this line; it is not persisted.
type OrderLine struct {
	ID                int64       `json:"id"`
	OrderID           int64       `json:"order_id"`
	ProductID         int64       `json:"product_id"`
	Kind              ProductKind `json:"product_kind"`
	ProductName       string      `json:"product_name"`
	Quantity          float64     `json:"quantity"`
	UnitPrice         float64     `json:"unit_price"`
	Subtotal          float64     `json:"subtotal"`
	ProductUnit       string      `json:"product_unit"`
	OriginName        string      `json:"origin_name"`
	Location          string      `json:"location"`
	ProductImage      string      `json:"product_image"`
	FulfillmentStatus string      `json:"fulfillment_status"`
	CartLineIDs       []int64     `json:"-"`
}

// Order is the durable record of a completed checkout. Payment has already
// been captured upstream; ExternalRef and PaymentRef are the gateway's
// identifiers, recorded verbatim.
type Order struct {
	ID               int64     `json:"id"`
	ExternalRef      string    `json:"external_ref"`
	PaymentRef       string    `json:"payment_ref"`
	BuyerID          int64     `json:"buyer_id"`
	Status           string    `json:"status"`
	TotalAmount      float64   `json:"total_amount"`
	Currency         string    `json:"currency"`
	DeliveryName     string    `json:"delivery_name"`
	DeliveryPhone    string    `json:"delivery_phone"`
	DeliveryAddress  string    `json:"delivery_address"`
	DeliveryDistrict string    `json:"delivery_district"`
	DeliveryCountry  string    `json:"delivery_country"`
	CreatedAt        time.Time   `json:"created_at"`
	Lines            []OrderLine `json:"items,omitempty"`
}

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
