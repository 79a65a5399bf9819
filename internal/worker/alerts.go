package worker

import (
	"context"
	"encoding/json"

	"retail-backoffice/internal/broker"
	"retail-backoffice/internal/models"
	"retail-backoffice/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// AlertWorker consumes the retail event topic and surfaces alerts in the
// logs. It is the hook point for external notifications (email, pager).
type AlertWorker struct {
	consumer *broker.Consumer
	logger   *zap.Logger
}

// NewAlertWorker creates a new alert worker
func NewAlertWorker(consumer *broker.Consumer) *AlertWorker {
	return &AlertWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}
}

// Start starts consuming events
func (w *AlertWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting alert worker")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *AlertWorker) Stop() error {
	w.logger.Info("Stopping alert worker")
	return w.consumer.Close()
}

func (w *AlertWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		w.logger.Error("Failed to unmarshal event", zap.Error(err))
		return err
	}

	switch base.EventType {
	case models.EventTypeLowStock:
		var event models.LowStockEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Warn("Low stock alert",
			zap.String("product_id", event.ProductID),
			zap.String("name", event.ProductName),
			zap.Int("stock_size", event.StockSize))

	case models.EventTypeCardExpiring:
		var event models.CardExpiringEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Warn("Loyalty card expiry alert",
			zap.String("card_id", event.CardID),
			zap.String("user_id", event.UserID),
			zap.Time("expiry_date", event.ExpiryDate))

	case models.EventTypePromotionDeactivated:
		var event models.PromotionDeactivatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("Promotion deactivated",
			zap.String("promotion_id", event.PromotionID),
			zap.String("name", event.Name))

	case models.EventTypeTransactionCreated, models.EventTypeTransactionDeleted:
		w.logger.Info("Transaction event",
			zap.String("event_type", base.EventType),
			zap.String("event_id", base.EventID))
	}

	return nil
}
