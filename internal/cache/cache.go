package cache

import (
	"context"
	"errors"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

var ErrCacheMiss = errors.New("cart not in cache")

type CartCache interface {
	Get(ctx context.Context, buyerID int64) (*domain.Cart, error)
	Set(ctx context.Context, buyerID int64, cart *domain.Cart) error
	Delete(ctx context.Context, buyerID int64) error
}
