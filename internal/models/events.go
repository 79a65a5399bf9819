package models

import "time"

// Event types
const (
	EventTypeTransactionCreated   = "TRANSACTION_CREATED"
	EventTypeTransactionDeleted   = "TRANSACTION_DELETED"
	EventTypePromotionDeactivated = "PROMOTION_DEACTIVATED"
	EventTypeLowStock             = "LOW_STOCK"
	EventTypeCardExpiring         = "CARD_EXPIRING"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// TransactionCreatedEvent published after a transaction is persisted
type TransactionCreatedEvent struct {
	BaseEvent
	TransactionID string             `json:"transaction_id"`
	UserID        string             `json:"user_id"`
	Products      []TransactionEntry `json:"products"`
	TotalAmount   float64            `json:"total_amount"`
	TotalDiscount float64            `json:"total_discount"`
	FinalAmount   float64            `json:"final_amount"`
}

// TransactionDeletedEvent published after a transaction and its side
// effects are reversed
type TransactionDeletedEvent struct {
	BaseEvent
	TransactionID string  `json:"transaction_id"`
	UserID        string  `json:"user_id"`
	FinalAmount   float64 `json:"final_amount"`
}

// PromotionDeactivatedEvent published when the sweep expires a promotion
type PromotionDeactivatedEvent struct {
	BaseEvent
	PromotionID string    `json:"promotion_id"`
	Name        string    `json:"name"`
	EndDate     time.Time `json:"end_date"`
}

// LowStockEvent published when a save leaves a product under the
// low-stock threshold
type LowStockEvent struct {
	BaseEvent
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	StockSize   int    `json:"stock_size"`
}

// CardExpiringEvent published when the sweep finds a card close to expiry
type CardExpiringEvent struct {
	BaseEvent
	CardID     string    `json:"card_id"`
	UserID     string    `json:"user_id"`
	ExpiryDate time.Time `json:"expiry_date"`
}
