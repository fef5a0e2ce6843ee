package services

import (
	"context"
	"time"

	"katalog/internal/models"
)

// Routing keys for product lifecycle events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product lifecycle events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// ProductEvent is the JSON body of a lifecycle event.
type ProductEvent struct {
	Type       string         `json:"type"`
	Product    models.Product `json:"product"`
	OccurredAt time.Time      `json:"occurredAt"`
}
