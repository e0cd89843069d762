package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"github.com/SeniruR/Agrovia-Backend-sub000/internal/repository"
)

type cartServiceMock struct {
	cart      *domain.Cart
	err       error
	addedLine *domain.CartLine
	updated   struct {
		cartItemID int64
		quantity   float64
	}
	removedID int64
	cleared   bool
}

func (m *cartServiceMock) GetCart(_ context.Context, buyerID int64) (*domain.Cart, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *cartServiceMock) AddItem(_ context.Context, line *domain.CartLine) error {
	m.addedLine = line
	return m.err
}

func (m *cartServiceMock) UpdateQuantity(_ context.Context, _, cartItemID int64, quantity float64) error {
	m.updated.cartItemID = cartItemID
	m.updated.quantity = quantity
	return m.err
}

func (m *cartServiceMock) RemoveItem(_ context.Context, _, cartItemID int64) error {
	m.removedID = cartItemID
	return m.err
}

func (m *cartServiceMock) ClearCart(_ context.Context, _ int64) error {
	m.cleared = true
	return m.err
}

// cartRouter mounts the handler the way main does, so URL params resolve.
func cartRouter(h *CartHandler) chi.Router {
	r := chi.NewRouter()
	r.Get("/cart", h.GetCart)
	r.Delete("/cart", h.ClearCart)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{cart_item_id}", h.UpdateQuantity)
	r.Delete("/cart/items/{cart_item_id}", h.RemoveItem)
	return r
}

func TestGetCart_Handler_Success(t *testing.T) {
	mock := &cartServiceMock{cart: &domain.Cart{
		BuyerID: 1,
		Items: []domain.CartLine{
			{ID: 1, ProductID: 10, Kind: domain.ProductKindCrop, Quantity: 2},
		},
	}}
	router := cartRouter(NewCartHandler(mock, 5*time.Second))

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("GET", "/cart", nil), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Cart
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.BuyerID != 1 || len(response.Items) != 1 {
		t.Errorf("Unexpected cart response: %+v", response)
	}
}

func TestGetCart_Handler_Unauthorized(t *testing.T) {
	router := cartRouter(NewCartHandler(&cartServiceMock{}, 5*time.Second))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/cart", nil)
	// No user in context

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("Expected status code %d, got %d", http.StatusUnauthorized, recorder.Code)
	}
}

func TestAddItem_Handler_Success(t *testing.T) {
	mock := &cartServiceMock{}
	router := cartRouter(NewCartHandler(mock, 5*time.Second))

	body, _ := json.Marshal(AddCartItemRequestDTO{
		ProductID:   10,
		ProductType: "shop",
		Quantity:    2,
		PriceAtAdd:  1500,
		ProductName: "Fertilizer",
	})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/cart/items", bytes.NewReader(body)), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}
	if mock.addedLine == nil {
		t.Fatal("service AddItem was not called")
	}
	if mock.addedLine.Kind != domain.ProductKindShop {
		t.Errorf("Expected shop kind, got %s", mock.addedLine.Kind)
	}
	if mock.addedLine.BuyerID != 1 {
		t.Errorf("Expected buyer id from context, got %d", mock.addedLine.BuyerID)
	}
}

func TestAddItem_Handler_UnknownKind(t *testing.T) {
	router := cartRouter(NewCartHandler(&cartServiceMock{}, 5*time.Second))

	body, _ := json.Marshal(AddCartItemRequestDTO{ProductID: 10, ProductType: "livestock", Quantity: 1})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/cart/items", bytes.NewReader(body)), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "unknown_product_kind" {
		t.Errorf("Expected error code 'unknown_product_kind', got %q", response.Code)
	}
}

func TestAddItem_Handler_InvalidQuantity(t *testing.T) {
	router := cartRouter(NewCartHandler(&cartServiceMock{}, 5*time.Second))

	body, _ := json.Marshal(AddCartItemRequestDTO{ProductID: 10, ProductType: "crop", Quantity: 0})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("POST", "/cart/items", bytes.NewReader(body)), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestUpdateQuantity_Handler_Success(t *testing.T) {
	mock := &cartServiceMock{}
	router := cartRouter(NewCartHandler(mock, 5*time.Second))

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 7})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PUT", "/cart/items/3", bytes.NewReader(body)), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.updated.cartItemID != 3 || mock.updated.quantity != 7 {
		t.Errorf("Unexpected update call: %+v", mock.updated)
	}
}

func TestUpdateQuantity_Handler_NotFound(t *testing.T) {
	mock := &cartServiceMock{err: repository.ErrCartItemNotFound}
	router := cartRouter(NewCartHandler(mock, 5*time.Second))

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 7})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PUT", "/cart/items/999", bytes.NewReader(body)), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestUpdateQuantity_Handler_BadParam(t *testing.T) {
	router := cartRouter(NewCartHandler(&cartServiceMock{}, 5*time.Second))

	body, _ := json.Marshal(UpdateQuantityRequestDTO{Quantity: 7})

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("PUT", "/cart/items/abc", bytes.NewReader(body)), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestRemoveItem_Handler_Success(t *testing.T) {
	mock := &cartServiceMock{}
	router := cartRouter(NewCartHandler(mock, 5*time.Second))

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("DELETE", "/cart/items/4", nil), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if mock.removedID != 4 {
		t.Errorf("Expected removal of item 4, got %d", mock.removedID)
	}
}

func TestClearCart_Handler_Success(t *testing.T) {
	mock := &cartServiceMock{}
	router := cartRouter(NewCartHandler(mock, 5*time.Second))

	recorder := httptest.NewRecorder()
	request := withUser(httptest.NewRequest("DELETE", "/cart", nil), 1)

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	if !mock.cleared {
		t.Error("Expected ClearCart to be called")
	}
}
