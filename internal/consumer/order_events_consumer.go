package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/SeniruR/Agrovia-Backend-sub000/internal/domain"
	"github.com/SeniruR/Agrovia-Backend-sub000/internal/publisher"
	r "github.com/SeniruR/Agrovia-Backend-sub000/internal/repository"
	"github.com/segmentio/kafka-go"
)

type NotificationStore interface {
	InsertNotification(ctx context.Context, n *domain.Notification) error
}

// Consumer turns order-events messages into buyer notifications.
type Consumer struct {
	store  NotificationStore
	reader *kafka.Reader
}

func NewConsumer(store NotificationStore, brokers ...string) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    publisher.Topic,
		GroupID:  "notification-service",
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{store, reader}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		c.processMessage(ctx)
	}
}

func (c *Consumer) Close() {
	if err := c.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (c *Consumer) processMessage(ctx context.Context) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("error reading message: %v", err)
		return
	}

	if err := c.handleEvent(ctx, m.Value); err != nil {
		log.Printf("error handling order event: %v", err)
	}
}

func (c *Consumer) handleEvent(ctx context.Context, value []byte) error {
	var event r.OrderPlacedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("parse order event: %w", err)
	}

	n := &domain.Notification{
		UserID: event.BuyerID,
		Title:  "Order placed",
		Body: fmt.Sprintf("Your order %s (%d items, %.2f %s) has been placed.",
			event.ExternalRef, event.LineCount, event.TotalAmount, event.Currency),
	}
	if err := c.store.InsertNotification(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}
