package domain

import "time"

// CartLine is one buyer's pending intent to purchase a quantity of one
// catalog item. It is destroyed by checkout or by explicit cart edits.
type CartLine struct {
	ID           int64       `json:"id"`
	BuyerID      int64       `json:"buyer_id"`
	ProductID    int64       `json:"product_id"`
	Kind         ProductKind `json:"product_kind"`
	Quantity     float64     `json:"quantity"`
	PriceAtAdd   float64     `json:"price_at_add"`
	ProductName  string      `json:"product_name"`
	ProductUnit  string      `json:"product_unit"`
	OriginName   string      `json:"origin_name"`
	Location     string      `json:"location"`
	District     string      `json:"district"`
	ProductImage string      `json:"product_image"`
	Latitude     *float64    `json:"latitude,omitempty"`
	Longitude    *float64    `json:"longitude,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type Cart struct {
	BuyerID int64      `json:"buyer_id"`
	Items   []CartLine `json:"items"`
}
