package domain

import "time"

// TransportAllocation is a transporter/vehicle assignment with its computed
// distance and cost. Before checkout it is keyed by cart item id; checkout
// migrates it to an order-scoped row keyed by order item id. The cost and
// distance come from an external calculation and are never recomputed here.
type TransportAllocation struct {
	ID                 int64     `json:"id"`
	CartItemID         int64     `json:"cart_item_id,omitempty"`
	OrderItemID        int64     `json:"order_item_id,omitempty"`
	TransportID        int64     `json:"transport_id"`
	VehicleType        string    `json:"vehicle_type"`
	VehicleNumber      string    `json:"vehicle_number"`
	PhoneNumber        string    `json:"phone_number"`
	BaseRate           float64   `json:"base_rate"`
	PerKmRate          float64   `json:"per_km_rate"`
	CalculatedDistance *float64  `json:"calculated_distance,omitempty"`
	TransportCost      *float64  `json:"transport_cost,omitempty"`
	District           string    `json:"district"`
	ItemLatitude       *float64  `json:"item_latitude,omitempty"`
	ItemLongitude      *float64  `json:"item_longitude,omitempty"`
	UserLatitude       *float64  `json:"user_latitude,omitempty"`
	UserLongitude      *float64  `json:"user_longitude,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}
