package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

type TransportStore interface {
	CreateAllocation(ctx context.Context, a *domain.TransportAllocation) (int64, error)
	ListAllocationsByCartItem(ctx context.Context, cartItemID int64) ([]*domain.TransportAllocation, error)
}

type TransportHandler struct {
	store   TransportStore
	timeout time.Duration
}

func NewTransportHandler(store TransportStore, timeout time.Duration) *TransportHandler {
	return &TransportHandler{
		store:   store,
		timeout: timeout,
	}
}

type CreateAllocationRequestDTO struct {
	CartItemID         int64    `json:"cart_item_id"`
	TransportID        int64    `json:"transport_id"`
	VehicleType        string   `json:"vehicle_type"`
	VehicleNumber      string   `json:"vehicle_number"`
	PhoneNumber        string   `json:"phone_number"`
	BaseRate           float64  `json:"base_rate"`
	PerKmRate          float64  `json:"per_km_rate"`
	CalculatedDistance *float64 `json:"calculated_distance"`
	TransportCost      *float64 `json:"transport_cost"`
	District           string   `json:"district"`
	ItemLatitude       *float64 `json:"item_latitude"`
	ItemLongitude      *float64 `json:"item_longitude"`
	UserLatitude       *float64 `json:"user_latitude"`
	UserLongitude      *float64 `json:"user_longitude"`
}

// POST /api/v1/transport-allocations
func (h *TransportHandler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req CreateAllocationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CartItemID <= 0 || req.TransportID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "cart_item_id and transport_id must be positive")
		return
	}

	id, err := h.store.CreateAllocation(ctx, &domain.TransportAllocation{
		CartItemID:         req.CartItemID,
		TransportID:        req.TransportID,
		VehicleType:        req.VehicleType,
		VehicleNumber:      req.VehicleNumber,
		PhoneNumber:        req.PhoneNumber,
		BaseRate:           req.BaseRate,
		PerKmRate:          req.PerKmRate,
		CalculatedDistance: req.CalculatedDistance,
		TransportCost:      req.TransportCost,
		District:           req.District,
		ItemLatitude:       req.ItemLatitude,
		ItemLongitude:      req.ItemLongitude,
		UserLatitude:       req.UserLatitude,
		UserLongitude:      req.UserLongitude,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to create transport allocation")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]int64{"allocation_id": id})
}

// GET /api/v1/cart/items/{cart_item_id}/transport
func (h *TransportHandler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cartItemID, err := parseIDParam(r, "cart_item_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_cart_item_id", "cart_item_id must be a positive integer")
		return
	}

	allocations, err := h.store.ListAllocationsByCartItem(ctx, cartItemID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch allocations")
		return
	}

	if allocations == nil {
		allocations = []*domain.TransportAllocation{}
	}
	respondJSON(w, http.StatusOK, allocations)
}
