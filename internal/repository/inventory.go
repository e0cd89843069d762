package repository

import (
	"context"
	"fmt"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

type StockResult int

const (
	StockDecremented StockResult = iota
	StockNotFound
)

// DecrementStock dispatches to the catalog that owns the product's stock row.
func (r *Repository) DecrementStock(ctx context.Context, q DBTX, kind domain.ProductKind, productID int64, qty float64) (StockResult, error) {
	switch kind {
	case domain.ProductKindShop:
		return r.DecrementShopStock(ctx, q, productID, qty)
	default:
		return r.DecrementCropStock(ctx, q, productID, qty)
	}
}

// DecrementCropStock subtracts qty from a crop post, clamped at zero, and
// deactivates the post when stock runs out. The single UPDATE reads old
// column values on the right-hand side, so concurrent decrements serialize
// on the row lock and can never drive quantity negative. There is no
// sufficiency check here: the floor is the only guarantee.
func (r *Repository) DecrementCropStock(ctx context.Context, q DBTX, cropID int64, qty float64) (StockResult, error) {
	query := `UPDATE crop_posts
	          SET quantity = GREATEST(quantity - $2, 0),
	              status = CASE WHEN quantity - $2 <= 0 THEN 'inactive' ELSE status END,
	              updated_at = NOW()
	          WHERE id = $1`

	res, err := q.ExecContext(ctx, query, cropID, qty)
	if err != nil {
		return 0, fmt.Errorf("decrement crop stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("decrement crop stock rows affected: %w", err)
	}
	if affected == 0 {
		return StockNotFound, nil
	}
	return StockDecremented, nil
}

// DecrementShopStock is the shop-inventory twin of DecrementCropStock; the
// availability flag drops when quantity reaches zero.
func (r *Repository) DecrementShopStock(ctx context.Context, q DBTX, productID int64, qty float64) (StockResult, error) {
	query := `UPDATE shop_inventory
	          SET quantity = GREATEST(quantity - $2, 0),
	              is_available = CASE WHEN quantity - $2 <= 0 THEN FALSE ELSE is_available END,
	              updated_at = NOW()
	          WHERE product_id = $1`

	res, err := q.ExecContext(ctx, query, productID, qty)
	if err != nil {
		return 0, fmt.Errorf("decrement shop stock: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("decrement shop stock rows affected: %w", err)
	}
	if affected == 0 {
		return StockNotFound, nil
	}
	return StockDecremented, nil
}
