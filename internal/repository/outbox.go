package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
)

const EventTypeOrderPlaced = "order.placed"

type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	Processed   bool
	CreatedAt   time.Time
}

// OrderPlacedEvent is the payload published to Kafka after a checkout
// commits. It is written to the outbox inside the checkout transaction.
type OrderPlacedEvent struct {
	OrderID     int64   `json:"order_id"`
	ExternalRef string  `json:"external_ref"`
	BuyerID     int64   `json:"buyer_id"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	LineCount   int     `json:"line_count"`
}

func (r *Repository) insertOrderPlacedEvent(ctx context.Context, q DBTX, orderID int64, order *domain.Order) error {
	payload, err := json.Marshal(OrderPlacedEvent{
		OrderID:     orderID,
		ExternalRef: order.ExternalRef,
		BuyerID:     order.BuyerID,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		LineCount:   len(order.Lines),
	})
	if err != nil {
		return fmt.Errorf("marshal order placed event: %w", err)
	}

	query := `INSERT INTO outbox_events (aggregate_id, event_type, payload, created_at)
	          VALUES ($1, $2, $3, NOW())`
	if _, err := q.ExecContext(ctx, query, fmt.Sprint(orderID), EventTypeOrderPlaced, payload); err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

func (r *Repository) GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	query := `SELECT id, aggregate_id, event_type, payload, processed, created_at
	          FROM outbox_events WHERE NOT processed ORDER BY id LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed events: %w", err)
	}
	defer rows.Close()

	var events []*OutboxEvent
	for rows.Next() {
		var ev OutboxEvent
		if err := rows.Scan(&ev.ID, &ev.AggregateID, &ev.EventType, &ev.Payload, &ev.Processed, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox event: %w", err)
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return events, nil
}

func (r *Repository) MarkEventAsProcessed(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET processed = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("mark event processed: %w", err)
	}
	return nil
}

func (r *Repository) InsertNotification(ctx context.Context, n *domain.Notification) error {
	query := `INSERT INTO notifications (user_id, title, body, created_at) VALUES ($1, $2, $3, NOW())`
	if _, err := r.db.ExecContext(ctx, query, n.UserID, n.Title, n.Body); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *Repository) ListNotificationsByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	query := `SELECT id, user_id, title, body, read, created_at
	          FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return notifications, nil
}
