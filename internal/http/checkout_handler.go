package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"github.com/SeniruR/Agrovia-Backend-sub000/internal/service"
)

type CheckoutHandler struct {
	checkout service.CheckoutService
	timeout  time.Duration
}

func NewCheckoutHandler(checkout service.CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		timeout:  timeout,
	}
}

// CheckoutItemDTO matches the payment-success payload the frontend posts.
// cart_item_id / cart_item_ids are candidate ids for transport allocation
// lookup; older clients send only one of them.
type CheckoutItemDTO struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Unit        string  `json:"unit"`
	Farmer      string  `json:"farmer"`
	Location    string  `json:"location"`
	Image       string  `json:"image"`
	ProductType string  `json:"product_type"`
	CartItemID  int64   `json:"cart_item_id"`
	CartItemIDs []int64 `json:"cart_item_ids"`
}

type PlaceOrderRequestDTO struct {
	OrderRef         string            `json:"order_id"`   // payment gateway order reference
	PaymentRef       string            `json:"payment_id"` // payment gateway payment reference
	Status           string            `json:"status"`
	TotalAmount      float64           `json:"total_amount"`
	Currency         string            `json:"currency"`
	DeliveryName     string            `json:"delivery_name"`
	DeliveryPhone    string            `json:"delivery_phone"`
	DeliveryAddress  string            `json:"delivery_address"`
	DeliveryDistrict string            `json:"delivery_district"`
	DeliveryCountry  string            `json:"delivery_country"`
	Items            []CheckoutItemDTO `json:"items"`
}

type PlaceOrderResponseDTO struct {
	Success bool  `json:"success"`
	OrderID int64 `json:"order_id"`
}

// POST /api/v1/orders
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	items := make([]service.CheckoutItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.CheckoutItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Unit:        it.Unit,
			OriginName:  it.Farmer,
			Location:    it.Location,
			Image:       it.Image,
			Kind:        it.ProductType,
			CartItemID:  it.CartItemID,
			CartItemIDs: it.CartItemIDs,
		})
	}

	orderID, err := h.checkout.PlaceOrder(ctx, &service.CheckoutRequest{
		BuyerID:          userID,
		ExternalRef:      req.OrderRef,
		PaymentRef:       req.PaymentRef,
		Status:           req.Status,
		TotalAmount:      req.TotalAmount,
		Currency:         req.Currency,
		DeliveryName:     req.DeliveryName,
		DeliveryPhone:    req.DeliveryPhone,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryDistrict: req.DeliveryDistrict,
		DeliveryCountry:  req.DeliveryCountry,
		Items:            items,
	})
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, PlaceOrderResponseDTO{Success: true, OrderID: orderID})
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		respondError(w, http.StatusBadRequest, "empty_order", "order must contain at least one item")
	case errors.Is(err, domain.ErrUnknownProductKind):
		respondError(w, http.StatusBadRequest, "unknown_product_kind", err.Error())
	case errors.Is(err, service.ErrInvalidNumber):
		respondError(w, http.StatusBadRequest, "invalid_number", err.Error())
	default:
		// No partial identifiers, no internals.
		respondError(w, http.StatusInternalServerError, "order_placement_failed", "order placement failed")
	}
}
