package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/cache"
	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"golang.org/x/sync/singleflight"
)

type CartRepository interface {
	GetCart(ctx context.Context, buyerID int64) (*domain.Cart, error)
	AddCartLine(ctx context.Context, line *domain.CartLine) error
	UpdateCartLineQuantity(ctx context.Context, buyerID, cartItemID int64, quantity float64) error
	RemoveCartLine(ctx context.Context, buyerID, cartItemID int64) error
	DeleteCart(ctx context.Context, buyerID int64) error
}

type CartService struct {
	repo  CartRepository
	cache cache.CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewCartService(repo CartRepository, cache cache.CartCache) *CartService {
	return &CartService{
		repo:  repo,
		cache: cache,
	}
}

func (s *CartService) GetCart(ctx context.Context, buyerID int64) (*domain.Cart, error) {
	// Use singleflight so concurrent cache misses for the same buyer hit
	// the database once.
	v, err, _ := s.sfg.Do(fmt.Sprint(buyerID), func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, buyerID)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, buyerID)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := s.cache.Set(context.Background(), buyerID, cart); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) AddItem(ctx context.Context, line *domain.CartLine) error {
	if errAdd := s.repo.AddCartLine(ctx, line); errAdd != nil {
		log.Printf("repo add cart line error: %v", errAdd)
		return errAdd
	}

	s.invalidateCache(line.BuyerID)
	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, buyerID, cartItemID int64, quantity float64) error {
	if errUpdate := s.repo.UpdateCartLineQuantity(ctx, buyerID, cartItemID, quantity); errUpdate != nil {
		log.Printf("repo update cart line error: %v", errUpdate)
		return errUpdate
	}

	s.invalidateCache(buyerID)
	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, buyerID, cartItemID int64) error {
	if errRemove := s.repo.RemoveCartLine(ctx, buyerID, cartItemID); errRemove != nil {
		log.Printf("repo remove cart line error: %v", errRemove)
		return errRemove
	}

	s.invalidateCache(buyerID)
	return nil
}

func (s *CartService) ClearCart(ctx context.Context, buyerID int64) error {
	if errDelete := s.repo.DeleteCart(ctx, buyerID); errDelete != nil {
		log.Printf("repo delete cart error: %v", errDelete)
		return errDelete
	}

	s.invalidateCache(buyerID)
	return nil
}

// InvalidateCart drops the cached cart; checkout calls this after the cart
// rows are deleted inside its transaction.
func (s *CartService) InvalidateCart(buyerID int64) {
	s.invalidateCache(buyerID)
}

func (s *CartService) invalidateCache(buyerID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if errInvalidate := s.cache.Delete(ctx, buyerID); errInvalidate != nil {
		log.Printf("cache invalidate error: %v", errInvalidate)
	}
}
