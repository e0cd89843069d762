package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"github.com/SeniruR/Agrovia-Backend-sub000/internal/repository"
)

type OrderStore interface {
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]*domain.Order, error)
}

type OrdersHandler struct {
	orders  OrderStore
	timeout time.Duration
}

func NewOrdersHandler(orders OrderStore, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		orders:  orders,
		timeout: timeout,
	}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orders, err := h.orders.ListOrdersByBuyer(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch orders")
		return
	}

	if orders == nil {
		orders = []*domain.Order{}
	}
	respondJSON(w, http.StatusOK, orders)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	orderID, err := parseIDParam(r, "order_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return
	}

	order, err := h.orders.GetOrderByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch order")
		return
	}
	if order.BuyerID != userID {
		respondError(w, http.StatusForbidden, "forbidden", "order belongs to another buyer")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
