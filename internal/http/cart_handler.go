package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"github.com/SeniruR/Agrovia-Backend-sub000/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CartService interface {
	GetCart(ctx context.Context, buyerID int64) (*domain.Cart, error)
	AddItem(ctx context.Context, line *domain.CartLine) error
	UpdateQuantity(ctx context.Context, buyerID, cartItemID int64, quantity float64) error
	RemoveItem(ctx context.Context, buyerID, cartItemID int64) error
	ClearCart(ctx context.Context, buyerID int64) error
}

type CartHandler struct {
	cart    CartService
	timeout time.Duration
}

func NewCartHandler(cart CartService, timeout time.Duration) *CartHandler {
	return &CartHandler{
		cart:    cart,
		timeout: timeout,
	}
}

type AddCartItemRequestDTO struct {
	ProductID    int64    `json:"product_id"`
	ProductType  string   `json:"product_type"`
	Quantity     float64  `json:"quantity"`
	PriceAtAdd   float64  `json:"price_at_add_time"`
	ProductName  string   `json:"product_name"`
	ProductUnit  string   `json:"product_unit"`
	FarmerName   string   `json:"farmer_name"`
	Location     string   `json:"location"`
	District     string   `json:"district"`
	ProductImage string   `json:"product_image"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type UpdateQuantityRequestDTO struct {
	Quantity float64 `json:"quantity"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	cart, err := h.cart.GetCart(ctx, userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to fetch cart")
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	var req AddCartItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}
	kind, err := domain.ParseProductKind(req.ProductType)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown_product_kind", "product_type must be crop or shop")
		return
	}

	line := &domain.CartLine{
		BuyerID:      userID,
		ProductID:    req.ProductID,
		Kind:         kind,
		Quantity:     req.Quantity,
		PriceAtAdd:   req.PriceAtAdd,
		ProductName:  req.ProductName,
		ProductUnit:  req.ProductUnit,
		OriginName:   req.FarmerName,
		Location:     req.Location,
		District:     req.District,
		ProductImage: req.ProductImage,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}
	if err := h.cart.AddItem(ctx, line); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to add item to cart")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// PUT /api/v1/cart/items/{cart_item_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := h.cart.UpdateQuantity(ctx, userID, cartItemID, req.Quantity); err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DELETE /api/v1/cart/items/{cart_item_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
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

	if err := h.cart.RemoveItem(ctx, userID, cartItemID); err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := getUserIDFromContext(r.Context())
	if userID == 0 {
		respondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	if err := h.cart.ClearCart(ctx, userID); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func handleCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrCartItemNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "cart item not found")
		return
	}
	respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, strconv.ErrSyntax
	}
	return id, nil
}
