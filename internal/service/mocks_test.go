package service

import (
	"context"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

// MockCheckoutRepository implements CheckoutRepository for testing
type MockCheckoutRepository struct {
	PlacedOrder *domain.Order // Captures the order passed to PlaceOrder
	OrderID     int64
	Err         error
}

func (m *MockCheckoutRepository) PlaceOrder(_ context.Context, order *domain.Order) (int64, error) {
	m.PlacedOrder = order
	if m.Err != nil {
		return 0, m.Err
	}
	return m.OrderID, nil
}

// MockCartInvalidator records which buyers had their cached cart dropped
type MockCartInvalidator struct {
	InvalidatedBuyers []int64
}

func (m *MockCartInvalidator) InvalidateCart(buyerID int64) {
	m.InvalidatedBuyers = append(m.InvalidatedBuyers, buyerID)
}
