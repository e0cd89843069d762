package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"unicode/utf8"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"github.com/google/uuid"
)

var (
	ErrEmptyOrder           = errors.New("order has no line items")
	ErrInvalidNumber        = errors.New("numeric field is not finite")
	ErrOrderPlacementFailed = errors.New("order placement failed")
)

const (
	maxDisplayLen = 255
	maxImageLen   = 2048

	defaultCurrency = "LKR"
	defaultStatus   = "paid"
)

// CheckoutRepository is the transactional backend of PlaceOrder.
type CheckoutRepository interface {
	PlaceOrder(ctx context.Context, order *domain.Order) (int64, error)
}

// CartInvalidator drops the buyer's cached cart once the transaction has
// deleted the cart rows; without it redis keeps serving the stale cart
// until the TTL runs out.
type CartInvalidator interface {
	InvalidateCart(buyerID int64)
}

// CheckoutItemInput is one line of a checkout request as the client sends
// it. CartItemID plus CartItemIDs form the candidate set for transport
// allocation lookup; legacy clients populate different fields for it.
type CheckoutItemInput struct {
	ProductID   int64
	ProductName string
	Quantity    float64
	UnitPrice   float64
	Unit        string
	OriginName  string
	Location    string
	Image       string
	Kind        string
	CartItemID  int64
	CartItemIDs []int64
}

type CheckoutRequest struct {
	BuyerID          int64
	ExternalRef      string
	PaymentRef       string
	Status           string
	TotalAmount      float64
	Currency         string
	DeliveryName     string
	DeliveryPhone    string
	DeliveryAddress  string
	DeliveryDistrict string
	DeliveryCountry  string
	Items            []CheckoutItemInput
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, req *CheckoutRequest) (int64, error)
}

type CheckoutServiceImpl struct {
	repo  CheckoutRepository
	carts CartInvalidator
}

func NewCheckoutService(repo CheckoutRepository, carts CartInvalidator) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{repo: repo, carts: carts}
}

// PlaceOrder validates and normalizes the request, then hands the whole
// checkout to the repository as one transaction. Validation errors come back
// typed; anything that fails past validation is reported as the single
// opaque ErrOrderPlacementFailed so callers never see transaction internals.
func (s *CheckoutServiceImpl) PlaceOrder(ctx context.Context, req *CheckoutRequest) (int64, error) {
	order, err := buildOrder(req)
	if err != nil {
		return 0, err
	}

	orderID, err := s.repo.PlaceOrder(ctx, order)
	if err != nil {
		log.Printf("checkout failed for buyer %d: %v", req.BuyerID, err)
		return 0, ErrOrderPlacementFailed
	}

	if s.carts != nil {
		s.carts.InvalidateCart(req.BuyerID)
	}

	log.Printf("order %d placed for buyer %d with %d lines", orderID, req.BuyerID, len(order.Lines))
	return orderID, nil
}

func buildOrder(req *CheckoutRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !isFinite(req.TotalAmount) {
		return nil, fmt.Errorf("%w: total_amount", ErrInvalidNumber)
	}

	order := &domain.Order{
		ExternalRef:      req.ExternalRef,
		PaymentRef:       req.PaymentRef,
		BuyerID:          req.BuyerID,
		Status:           req.Status,
		TotalAmount:      math.Max(req.TotalAmount, 0),
		Currency:         req.Currency,
		DeliveryName:     truncate(req.DeliveryName, maxDisplayLen),
		DeliveryPhone:    truncate(req.DeliveryPhone, 30),
		DeliveryAddress:  truncate(req.DeliveryAddress, 500),
		DeliveryDistrict: truncate(req.DeliveryDistrict, 100),
		DeliveryCountry:  truncate(req.DeliveryCountry, 100),
	}
	if order.ExternalRef == "" {
		order.ExternalRef = uuid.NewString()
	}
	if order.Currency == "" {
		order.Currency = defaultCurrency
	}
	if order.Status == "" {
		order.Status = defaultStatus
	}

	order.Lines = make([]domain.OrderLine, 0, len(req.Items))
	for i, item := range req.Items {
		kind, err := domain.ParseProductKind(item.Kind)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w (%q)", i, err, item.Kind)
		}
		if !isFinite(item.Quantity) || !isFinite(item.UnitPrice) {
			return nil, fmt.Errorf("%w: item %d quantity/unit_price", ErrInvalidNumber, i)
		}

		qty := math.Max(item.Quantity, 0)
		price := math.Max(item.UnitPrice, 0)
		order.Lines = append(order.Lines, domain.OrderLine{
			ProductID:    item.ProductID,
			Kind:         kind,
			ProductName:  truncate(item.ProductName, maxDisplayLen),
			Quantity:     qty,
			UnitPrice:    price,
			Subtotal:     qty * price,
			ProductUnit:  truncate(item.Unit, 50),
			OriginName:   truncate(item.OriginName, maxDisplayLen),
			Location:     truncate(item.Location, maxDisplayLen),
			ProductImage: truncate(item.Image, maxImageLen),
			CartLineIDs:  candidateIDs(item.CartItemID, item.CartItemIDs),
		})
	}
	return order, nil
}

// candidateIDs merges the line's own cart item id with any client-supplied
// aliases into a deduplicated set, dropping non-positive ids.
func candidateIDs(own int64, aliases []int64) []int64 {
	seen := make(map[int64]struct{}, len(aliases)+1)
	var out []int64
	for _, id := range append([]int64{own}, aliases...) {
		if id <= 0 {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// truncate cuts s to at most limit bytes without splitting a rune; a cut
// mid-rune would hand Postgres invalid UTF-8 and abort the transaction.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
