package repository

import (
	"context"
	"fmt"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"github.com/lib/pq"
)

// CreateAllocation attaches a transporter assignment to a cart item. The
// distance and cost fields arrive pre-computed.
func (r *Repository) CreateAllocation(ctx context.Context, a *domain.TransportAllocation) (int64, error) {
	query := `INSERT INTO cart_transports (cart_item_id, transport_id, vehicle_type, vehicle_number, phone_number,
	                                       base_rate, per_km_rate, calculated_distance, transport_cost, district,
	                                       item_latitude, item_longitude, user_latitude, user_longitude, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
	          RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		a.CartItemID,
		a.TransportID,
		a.VehicleType,
		a.VehicleNumber,
		a.PhoneNumber,
		a.BaseRate,
		a.PerKmRate,
		a.CalculatedDistance,
		a.TransportCost,
		a.District,
		a.ItemLatitude,
		a.ItemLongitude,
		a.UserLatitude,
		a.UserLongitude,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transport allocation: %w", err)
	}
	return id, nil
}

func (r *Repository) ListAllocationsByCartItem(ctx context.Context, cartItemID int64) ([]*domain.TransportAllocation, error) {
	query := `SELECT id, cart_item_id, transport_id, vehicle_type, vehicle_number, phone_number,
	                 base_rate, per_km_rate, calculated_distance, transport_cost, district,
	                 item_latitude, item_longitude, user_latitude, user_longitude, created_at
	          FROM cart_transports WHERE cart_item_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, cartItemID)
	if err != nil {
		return nil, fmt.Errorf("query allocations by cart item: %w", err)
	}
	defer rows.Close()

	var allocations []*domain.TransportAllocation
	for rows.Next() {
		var a domain.TransportAllocation
		if err := rows.Scan(
			&a.ID,
			&a.CartItemID,
			&a.TransportID,
			&a.VehicleType,
			&a.VehicleNumber,
			&a.PhoneNumber,
			&a.BaseRate,
			&a.PerKmRate,
			&a.CalculatedDistance,
			&a.TransportCost,
			&a.District,
			&a.ItemLatitude,
			&a.ItemLongitude,
			&a.UserLatitude,
			&a.UserLongitude,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan allocation row: %w", err)
		}
		allocations = append(allocations, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return allocations, nil
}

// MigrateAllocations moves every pre-checkout allocation whose cart item id
// is in candidateIDs to an order-scoped row pointing at orderLineID. The
// DELETE and INSERT share one statement, so a row is either moved whole or
// left in place; there is no window where a freshly committed allocation can
// be deleted without its copy. Zero matches is a no-op: pickup-only items
// carry no allocation.
func (r *Repository) MigrateAllocations(ctx context.Context, q DBTX, candidateIDs []int64, orderLineID int64) (int64, error) {
	if len(candidateIDs) == 0 {
		return 0, nil
	}

	query := `WITH moved AS (
	              DELETE FROM cart_transports WHERE cart_item_id = ANY($2)
	              RETURNING transport_id, vehicle_type, vehicle_number, phone_number,
	                        base_rate, per_km_rate, calculated_distance, transport_cost, district,
	                        item_latitude, item_longitude, user_latitude, user_longitude, created_at
	          )
	          INSERT INTO order_transports (order_item_id, transport_id, vehicle_type, vehicle_number, phone_number,
	                                        base_rate, per_km_rate, calculated_distance, transport_cost, district,
	                                        item_latitude, item_longitude, user_latitude, user_longitude, created_at)
	          SELECT $1, transport_id, vehicle_type, vehicle_number, phone_number,
	                 base_rate, per_km_rate, calculated_distance, transport_cost, district,
	                 item_latitude, item_longitude, user_latitude, user_longitude, created_at
	          FROM moved`

	res, err := q.ExecContext(ctx, query, orderLineID, pq.Array(candidateIDs))
	if err != nil {
		return 0, fmt.Errorf("migrate transport allocations: %w", err)
	}
	moved, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("migrate transport allocations rows affected: %w", err)
	}
	return moved, nil
}
