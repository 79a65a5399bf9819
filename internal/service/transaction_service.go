package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"
	"retail-backoffice/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ActivePromotionSource is where the workflow reads promotion rules from.
// PromotionService satisfies it (with the Redis cache in front).
type ActivePromotionSource interface {
	GetActivePromotions(ctx context.Context) ([]models.Promotion, error)
}

// TransactionService orchestrates the point-of-sale workflow: cart
// validation, promotion allocation, loyalty discount, stock mutation.
type TransactionService struct {
	transactions TransactionRepo
	users        UserRepo
	catalog      *ProductService
	loyalty      *LoyaltyCardService
	promotions   ActivePromotionSource
	publisher    EventPublisher
	metrics      MetricsSink
	logger       *zap.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactions TransactionRepo,
	users UserRepo,
	catalog *ProductService,
	loyalty *LoyaltyCardService,
	promotions ActivePromotionSource,
	publisher EventPublisher,
	metrics MetricsSink,
) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		users:        users,
		catalog:      catalog,
		loyalty:      loyalty,
		promotions:   promotions,
		publisher:    publisher,
		metrics:      metrics,
		logger:       util.GetLogger(),
	}
}

// CreateTransactionRequest represents a request to create a transaction
type CreateTransactionRequest struct {
	UserID        string                    `json:"user_id" binding:"required"`
	Products      []models.TransactionEntry `json:"products" binding:"required,min=1"`
	LoyaltyCardID string                    `json:"loyalty_card_id,omitempty"`
	UseDiscount   bool                      `json:"use_discount"`
}

// LoyaltyResult reports whether the loyalty step applied a discount or
// was skipped, and why. A skip never fails the transaction.
type LoyaltyResult struct {
	Applied       bool    `json:"applied"`
	SkipReason    string  `json:"skip_reason,omitempty"`
	Discount      float64 `json:"discount"`
	PointsAwarded int     `json:"points_awarded"`
}

// Loyalty skip reasons
const (
	SkipNotRequested    = "not_requested"
	SkipCardUnavailable = "card_unavailable"
)

// CreateTransaction prices and persists a cart. Stock decrements are
// staged and applied only after the whole cart validates, so a failing
// entry leaves no earlier entry's stock touched.
func (s *TransactionService) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*models.Transaction, LoyaltyResult, error) {
	ctx, span := util.StartSpan(ctx, "TransactionService.CreateTransaction")
	defer span.End()

	start := time.Now()
	defer func() {
		util.TransactionWorkflowLatency.Observe(time.Since(start).Seconds())
	}()

	if _, err := s.users.GetUserByID(ctx, req.UserID); err != nil {
		s.metrics.TransactionFailed("user_not_found")
		return nil, LoyaltyResult{}, err
	}

	staged, totalAmount, unitsByCategory, err := s.stageCart(ctx, req.Products)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.metrics.TransactionFailed("product_not_found")
		} else {
			s.metrics.TransactionFailed("insufficient_stock")
		}
		return nil, LoyaltyResult{}, err
	}

	promotionDiscount, err := s.promotionDiscount(ctx, unitsByCategory)
	if err != nil {
		return nil, LoyaltyResult{}, err
	}

	loyalty := s.applyLoyalty(ctx, req.LoyaltyCardID, req.UseDiscount, totalAmount-promotionDiscount)

	// Whole cart validated: persist the staged decrements, one save per
	// product. Last-write-wins against concurrent requests is accepted.
	for _, product := range staged {
		if err := s.catalog.SaveStock(ctx, product); err != nil {
			return nil, LoyaltyResult{}, err
		}
	}

	totalDiscount := promotionDiscount + loyalty.Discount
	tx := &models.Transaction{
		ID:                uuid.New().String(),
		UserID:            req.UserID,
		Products:          req.Products,
		LoyaltyCardID:     req.LoyaltyCardID,
		UseDiscount:       req.UseDiscount,
		Date:              time.Now(),
		TotalAmount:       totalAmount,
		PromotionDiscount: promotionDiscount,
		LoyaltyDiscount:   loyalty.Discount,
		TotalDiscount:     totalDiscount,
		FinalAmount:       totalAmount - totalDiscount,
	}

	if err := s.transactions.SaveTransaction(ctx, tx); err != nil {
		s.metrics.TransactionFailed("store_error")
		return nil, LoyaltyResult{}, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.metrics.TransactionCreated(tx.UserID)
	s.metrics.DiscountGranted(tx.TotalDiscount)
	s.logger.Info("Transaction created",
		zap.String("transaction_id", tx.ID),
		zap.String("user_id", tx.UserID),
		zap.Float64("final_amount", tx.FinalAmount))

	s.publishCreated(ctx, tx)
	return tx, loyalty, nil
}

// stageCart validates every entry and accumulates the pending stock
// decrements without persisting any of them. It returns the staged
// products, the pre-discount total, and the per-category flat unit-price
// lists (one slot per physical unit) used for promotion allocation.
func (s *TransactionService) stageCart(ctx context.Context, entries []models.TransactionEntry) (map[string]*models.Product, float64, map[string][]float64, error) {
	staged := make(map[string]*models.Product)
	unitsByCategory := make(map[string][]float64)
	var totalAmount float64

	for _, entry := range entries {
		if entry.Quantity <= 0 {
			return nil, 0, nil, apperrors.InvalidInputf("quantity must be positive for product %s", entry.ProductID)
		}

		product, ok := staged[entry.ProductID]
		if !ok {
			var err error
			product, err = s.catalog.GetProduct(ctx, entry.ProductID)
			if err != nil {
				return nil, 0, nil, err
			}
			staged[entry.ProductID] = product
		}

		if product.StockSize < entry.Quantity {
			return nil, 0, nil, apperrors.InvalidInputf(
				"insufficient stock for product %s: available=%d, requested=%d",
				entry.ProductID, product.StockSize, entry.Quantity)
		}

		product.StockSize -= entry.Quantity
		totalAmount += product.Price * float64(entry.Quantity)

		for i := 0; i < entry.Quantity; i++ {
			unitsByCategory[product.Category] = append(unitsByCategory[product.Category], product.Price)
		}
	}

	return staged, totalAmount, unitsByCategory, nil
}

// promotionDiscount applies every active buy-X-get-Y-free promotion to
// the consumed units. Other promotion types are stored but not
// consulted here.
func (s *TransactionService) promotionDiscount(ctx context.Context, unitsByCategory map[string][]float64) (float64, error) {
	active, err := s.promotions.GetActivePromotions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load active promotions: %w", err)
	}
	return allocateFreeUnits(unitsByCategory, active), nil
}

// allocateFreeUnits sums the prices of the units each promotion gives
// away. Per promotion and category, units sort by ascending price and
// partition into groups of buy+free; within each complete group the
// index formula selects the free units, so the cheapest eligible units
// go free. Leftover partial groups never qualify. Promotions targeting
// the same category compound additively over the same unit pool.
func allocateFreeUnits(unitsByCategory map[string][]float64, promotions []models.Promotion) float64 {
	var discount float64

	for _, promotion := range promotions {
		if promotion.Type != models.PromotionBuyXGetYFree {
			continue
		}
		if promotion.BuyQuantity <= 0 || promotion.FreeQuantity <= 0 {
			continue
		}

		for _, category := range promotion.ApplicableCategories {
			prices, ok := unitsByCategory[category]
			if !ok || len(prices) == 0 {
				continue
			}

			sort.Float64s(prices)
			total := len(prices)
			sets := total / (promotion.BuyQuantity + promotion.FreeQuantity)

			for i := 0; i < sets*promotion.FreeQuantity; i++ {
				index := promotion.BuyQuantity*(i/promotion.FreeQuantity+1) + i%promotion.FreeQuantity
				if index < total {
					discount += prices[index]
				}
			}
		}
	}

	return discount
}

// applyLoyalty computes the loyalty-card discount against the
// post-promotion amount and awards points on the post-discount spend.
// Any failure resolving the card skips the step instead of failing the
// transaction.
func (s *TransactionService) applyLoyalty(ctx context.Context, cardID string, useDiscount bool, amount float64) LoyaltyResult {
	if !useDiscount || cardID == "" {
		return LoyaltyResult{SkipReason: SkipNotRequested}
	}

	discount, err := s.loyalty.CalculateDiscount(ctx, cardID, amount)
	if err != nil {
		s.metrics.LoyaltyDiscountSkipped(SkipCardUnavailable)
		s.logger.Warn("Loyalty discount skipped",
			zap.String("card_id", cardID),
			zap.Error(err))
		return LoyaltyResult{SkipReason: SkipCardUnavailable}
	}

	points := int((amount - discount) / 10)
	if _, err := s.loyalty.AddPoints(ctx, cardID, points); err != nil {
		s.metrics.LoyaltyDiscountSkipped(SkipCardUnavailable)
		s.logger.Warn("Loyalty points not awarded, discount skipped",
			zap.String("card_id", cardID),
			zap.Error(err))
		return LoyaltyResult{SkipReason: SkipCardUnavailable}
	}

	return LoyaltyResult{Applied: true, Discount: discount, PointsAwarded: points}
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.transactions.GetTransactionByID(ctx, id)
}

// GetTransactions lists all transactions
func (s *TransactionService) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.transactions.GetTransactions(ctx)
}

// GetTransactionsByUser lists a user's transactions
func (s *TransactionService) GetTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.transactions.GetTransactionsByUser(ctx, userID)
}

// GetTransactionsByDateRange lists transactions inside [start, end]
func (s *TransactionService) GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	return s.transactions.GetTransactionsByDateRange(ctx, start, end)
}

// DeleteTransaction reverses a transaction: restores stock for every
// entry, deducts the points it earned, and removes the record. Restores
// are staged first, so a product that no longer resolves aborts the
// deletion before any stock is touched.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := util.StartSpan(ctx, "TransactionService.DeleteTransaction")
	defer span.End()

	tx, err := s.transactions.GetTransactionByID(ctx, id)
	if err != nil {
		return err
	}

	staged := make(map[string]*models.Product)
	for _, entry := range tx.Products {
		product, ok := staged[entry.ProductID]
		if !ok {
			product, err = s.catalog.GetProduct(ctx, entry.ProductID)
			if err != nil {
				return err
			}
			staged[entry.ProductID] = product
		}
		product.StockSize += entry.Quantity
	}

	for _, product := range staged {
		if err := s.catalog.SaveStock(ctx, product); err != nil {
			return err
		}
	}

	if tx.UseDiscount && tx.LoyaltyCardID != "" {
		s.deductPoints(ctx, tx)
	}

	if err := s.transactions.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.metrics.TransactionDeleted(tx.UserID)
	s.logger.Info("Transaction deleted",
		zap.String("transaction_id", id),
		zap.String("user_id", tx.UserID))

	s.publishDeleted(ctx, tx)
	return nil
}

// deductPoints takes back the points the transaction earned, clamped at
// zero. A card that no longer resolves is skipped silently.
func (s *TransactionService) deductPoints(ctx context.Context, tx *models.Transaction) {
	card, err := s.loyalty.GetCard(ctx, tx.LoyaltyCardID)
	if err != nil {
		s.logger.Warn("Point deduction skipped, card unavailable",
			zap.String("card_id", tx.LoyaltyCardID),
			zap.Error(err))
		return
	}

	points := int(tx.FinalAmount / 10)
	card.Points -= points
	if card.Points < 0 {
		card.Points = 0
	}

	if err := s.loyalty.cards.SaveLoyaltyCard(ctx, card); err != nil {
		s.logger.Error("Failed to save card after point deduction",
			zap.String("card_id", card.ID),
			zap.Error(err))
	}
}

func (s *TransactionService) publishCreated(ctx context.Context, tx *models.Transaction) {
	if s.publisher == nil {
		return
	}
	event := &models.TransactionCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTransactionCreated,
			Timestamp: time.Now(),
		},
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Products:      tx.Products,
		TotalAmount:   tx.TotalAmount,
		TotalDiscount: tx.TotalDiscount,
		FinalAmount:   tx.FinalAmount,
	}
	if err := s.publisher.PublishTransactionCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish TransactionCreated event", zap.Error(err))
	}
}

func (s *TransactionService) publishDeleted(ctx context.Context, tx *models.Transaction) {
	if s.publisher == nil {
		return
	}
	event := &models.TransactionDeletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeTransactionDeleted,
			Timestamp: time.Now(),
		},
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		FinalAmount:   tx.FinalAmount,
	}
	if err := s.publisher.PublishTransactionDeleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish TransactionDeleted event", zap.Error(err))
	}
}
