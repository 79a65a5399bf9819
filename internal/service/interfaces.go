package service

import (
	"context"
	"time"

	"retail-backoffice/internal/models"
)

// Repositories required by the services. The Mongo store implements all
// of them; tests supply in-memory fakes.

type UserRepo interface {
	SaveUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type ProductRepo interface {
	SaveProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type PromotionRepo interface {
	SavePromotion(ctx context.Context, promotion *models.Promotion) error
	GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error)
	GetPromotions(ctx context.Context) ([]models.Promotion, error)
	GetActivePromotions(ctx context.Context) ([]models.Promotion, error)
	DeletePromotion(ctx context.Context, id string) error
}

type LoyaltyCardRepo interface {
	SaveLoyaltyCard(ctx context.Context, card *models.LoyaltyCard) error
	GetLoyaltyCardByID(ctx context.Context, id string) (*models.LoyaltyCard, error)
	GetLoyaltyCardsByUser(ctx context.Context, userID string) ([]models.LoyaltyCard, error)
	GetLoyaltyCards(ctx context.Context) ([]models.LoyaltyCard, error)
	DeleteLoyaltyCard(ctx context.Context, id string) error
}

type TransactionRepo interface {
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error)
	GetTransactions(ctx context.Context) ([]models.Transaction, error)
	GetTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// EventPublisher abstracts the broker so services can run without Kafka
// in tests. broker.EventPublisher satisfies it.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, event *models.TransactionCreatedEvent) error
	PublishTransactionDeleted(ctx context.Context, event *models.TransactionDeletedEvent) error
	PublishPromotionDeactivated(ctx context.Context, event *models.PromotionDeactivatedEvent) error
	PublishLowStock(ctx context.Context, event *models.LowStockEvent) error
	PublishCardExpiring(ctx context.Context, event *models.CardExpiringEvent) error
}

// PromotionCache abstracts the Redis active-promotion cache.
type PromotionCache interface {
	GetActivePromotions(ctx context.Context) ([]models.Promotion, bool)
	SetActivePromotions(ctx context.Context, promotions []models.Promotion) error
	Invalidate(ctx context.Context) error
}

// MetricsSink receives business counters at well-defined workflow points.
// Nothing in the services reads these back; observability only.
type MetricsSink interface {
	TransactionCreated(userID string)
	TransactionDeleted(userID string)
	TransactionFailed(reason string)
	DiscountGranted(amount float64)
	LoyaltyDiscountSkipped(reason string)
	UserCreated()
	UserDeleted()
	CardIssued()
	PromotionSwept()
}

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) TransactionCreated(string)     {}
func (NopMetrics) TransactionDeleted(string)     {}
func (NopMetrics) TransactionFailed(string)      {}
func (NopMetrics) DiscountGranted(float64)       {}
func (NopMetrics) LoyaltyDiscountSkipped(string) {}
func (NopMetrics) UserCreated()                  {}
func (NopMetrics) UserDeleted()                  {}
func (NopMetrics) CardIssued()                   {}
func (NopMetrics) PromotionSwept()               {}
