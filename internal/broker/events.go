package broker

import (
	"context"
	"fmt"

	"retail-backoffice/internal/models"
)

// EventPublisher handles publishing retail domain events
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishTransactionCreated publishes a TransactionCreated event
func (ep *EventPublisher) PublishTransactionCreated(ctx context.Context, event *models.TransactionCreatedEvent) error {
	key := fmt.Sprintf("transaction-%s", event.TransactionID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishTransactionDeleted publishes a TransactionDeleted event
func (ep *EventPublisher) PublishTransactionDeleted(ctx context.Context, event *models.TransactionDeletedEvent) error {
	key := fmt.Sprintf("transaction-%s", event.TransactionID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPromotionDeactivated publishes a PromotionDeactivated event
func (ep *EventPublisher) PublishPromotionDeactivated(ctx context.Context, event *models.PromotionDeactivatedEvent) error {
	key := fmt.Sprintf("promotion-%s", event.PromotionID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishLowStock publishes a LowStock event
func (ep *EventPublisher) PublishLowStock(ctx context.Context, event *models.LowStockEvent) error {
	key := fmt.Sprintf("product-%s", event.ProductID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishCardExpiring publishes a CardExpiring event
func (ep *EventPublisher) PublishCardExpiring(ctx context.Context, event *models.CardExpiringEvent) error {
	key := fmt.Sprintf("card-%s", event.CardID)
	return ep.producer.PublishEvent(ctx, key, event)
}
