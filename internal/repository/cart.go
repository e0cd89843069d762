package repository

import (
	"context"
	"fmt"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

func (r *Repository) GetCart(ctx context.Context, buyerID int64) (*domain.Cart, error) {
	query := `SELECT id, buyer_id, product_id, product_kind, quantity, price_at_add, product_name, product_unit,
	                 origin_name, location, district, product_image, latitude, longitude, created_at, updated_at
	          FROM carts WHERE buyer_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}
	defer rows.Close()

	cart := &domain.Cart{BuyerID: buyerID}
	for rows.Next() {
		var l domain.CartLine
		if err := rows.Scan(
			&l.ID,
			&l.BuyerID,
			&l.ProductID,
			&l.Kind,
			&l.Quantity,
			&l.PriceAtAdd,
			&l.ProductName,
			&l.ProductUnit,
			&l.OriginName,
			&l.Location,
			&l.District,
			&l.ProductImage,
			&l.Latitude,
			&l.Longitude,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		cart.Items = append(cart.Items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cart, nil
}

// AddCartLine inserts a new line or, when the buyer already has this product
// of this kind in the cart, merges the quantities and refreshes the price
// snapshot. Coordinates are only overwritten when the new line carries them.
func (r *Repository) AddCartLine(ctx context.Context, line *domain.CartLine) error {
	query := `INSERT INTO carts (buyer_id, product_id, product_kind, quantity, price_at_add, product_name,
	                             product_unit, origin_name, location, district, product_image,
	                             latitude, longitude, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	          ON CONFLICT (buyer_id, product_id, product_kind) DO UPDATE
	          SET quantity = carts.quantity + EXCLUDED.quantity,
	              price_at_add = EXCLUDED.price_at_add,
	              latitude = COALESCE(EXCLUDED.latitude, carts.latitude),
	              longitude = COALESCE(EXCLUDED.longitude, carts.longitude),
	              updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query,
		line.BuyerID,
		line.ProductID,
		line.Kind,
		line.Quantity,
		line.PriceAtAdd,
		line.ProductName,
		line.ProductUnit,
		line.OriginName,
		line.Location,
		line.District,
		line.ProductImage,
		line.Latitude,
		line.Longitude,
	)
	if err != nil {
		return fmt.Errorf("add cart line: %w", err)
	}
	return nil
}

// UpdateCartLineQuantity sets a new quantity; a quantity of zero or less
// removes the line (and its transport allocations, to satisfy the FK).
func (r *Repository) UpdateCartLineQuantity(ctx context.Context, buyerID, cartItemID int64, quantity float64) error {
	if quantity <= 0 {
		return r.RemoveCartLine(ctx, buyerID, cartItemID)
	}

	query := `UPDATE carts SET quantity = $3, updated_at = NOW() WHERE id = $2 AND buyer_id = $1`
	res, err := r.db.ExecContext(ctx, query, buyerID, cartItemID, quantity)
	if err != nil {
		return fmt.Errorf("update cart line quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update cart line rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *Repository) RemoveCartLine(ctx context.Context, buyerID, cartItemID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_transports WHERE cart_item_id = $1`, cartItemID); err != nil {
		return fmt.Errorf("delete cart line allocations: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM carts WHERE id = $2 AND buyer_id = $1`, buyerID, cartItemID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cart line rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// DeleteCart clears the buyer's cart outside of checkout.
func (r *Repository) DeleteCart(ctx context.Context, buyerID int64) error {
	return r.ClearCart(ctx, r.db, buyerID)
}

// ClearCart is the checkout finalizer: it removes any allocation rows still
// attached to the buyer's cart lines (allocations that migration did not
// match stay behind otherwise), then the cart lines themselves. Clearing an
// empty cart is a no-op.
func (r *Repository) ClearCart(ctx context.Context, q DBTX, buyerID int64) error {
	danglingQuery := `DELETE FROM cart_transports ct
	                  USING carts c
	                  WHERE ct.cart_item_id = c.id AND c.buyer_id = $1`
	if _, err := q.ExecContext(ctx, danglingQuery, buyerID); err != nil {
		return fmt.Errorf("delete dangling allocations: %w", err)
	}

	if _, err := q.ExecContext(ctx, `DELETE FROM carts WHERE buyer_id = $1`, buyerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
