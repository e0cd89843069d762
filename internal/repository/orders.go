package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

func (r *Repository) InsertOrder(ctx context.Context, q DBTX, order *domain.Order) (int64, error) {
	query := `INSERT INTO orders (external_ref, payment_ref, buyer_id, status, total_amount, currency,
	                              delivery_name, delivery_phone, delivery_address, delivery_district, delivery_country,
	                              created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
	          RETURNING id`

	var id int64
	err := q.QueryRowContext(ctx, query,
		order.ExternalRef,
		order.PaymentRef,
		order.BuyerID,
		order.Status,
		order.TotalAmount,
		order.Currency,
		order.DeliveryName,
		order.DeliveryPhone,
		order.DeliveryAddress,
		order.DeliveryDistrict,
		order.DeliveryCountry,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}

func (r *Repository) InsertOrderLine(ctx context.Context, q DBTX, orderID int64, line *domain.OrderLine) (int64, error) {
	query := `INSERT INTO order_items (order_id, product_id, product_kind, product_name, quantity, unit_price,
	                                   subtotal, product_unit, origin_name, location, product_image,
	                                   fulfillment_status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	          RETURNING id`

	var id int64
	err := q.QueryRowContext(ctx, query,
		orderID,
		line.ProductID,
		line.Kind,
		line.ProductName,
		line.Quantity,
		line.UnitPrice,
		line.Subtotal,
		line.ProductUnit,
		line.OriginName,
		line.Location,
		line.ProductImage,
		domain.FulfillmentStatusPending,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert order line: %w", err)
	}
	return id, nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT id, external_ref, payment_ref, buyer_id, status, total_amount, currency,
	                 delivery_name, delivery_phone, delivery_address, delivery_district, delivery_country, created_at
	          FROM orders WHERE id = $1`

	var order domain.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.ExternalRef,
		&order.PaymentRef,
		&order.BuyerID,
		&order.Status,
		&order.TotalAmount,
		&order.Currency,
		&order.DeliveryName,
		&order.DeliveryPhone,
		&order.DeliveryAddress,
		&order.DeliveryDistrict,
		&order.DeliveryCountry,
		&order.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query order by id: %w", err)
	}

	lines, err := r.listOrderLines(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return &order, nil
}

func (r *Repository) listOrderLines(ctx context.Context, orderID int64) ([]domain.OrderLine, error) {
	query := `SELECT id, order_id, product_id, product_kind, product_name, quantity, unit_price, subtotal,
	                 product_unit, origin_name, location, product_image, fulfillment_status
	          FROM order_items WHERE order_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order lines: %w", err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(
			&l.ID,
			&l.OrderID,
			&l.ProductID,
			&l.Kind,
			&l.ProductName,
			&l.Quantity,
			&l.UnitPrice,
			&l.Subtotal,
			&l.ProductUnit,
			&l.OriginName,
			&l.Location,
			&l.ProductImage,
			&l.FulfillmentStatus,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return lines, nil
}

func (r *Repository) ListOrdersByBuyer(ctx context.Context, buyerID int64) ([]*domain.Order, error) {
	query := `SELECT id, external_ref, payment_ref, buyer_id, status, total_amount, currency,
	                 delivery_name, delivery_phone, delivery_address, delivery_district, delivery_country, created_at
	          FROM orders WHERE buyer_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, fmt.Errorf("query orders by buyer: %w", err)
	}
	defer rows.Close()

	var orders []*domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.ExternalRef,
			&order.PaymentRef,
			&order.BuyerID,
			&order.Status,
			&order.TotalAmount,
			&order.Currency,
			&order.DeliveryName,
			&order.DeliveryPhone,
			&order.DeliveryAddress,
			&order.DeliveryDistrict,
			&order.DeliveryCountry,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return orders, nil
}
