package service

import (
	"context"
	"fmt"
	"time"

	"retail-backoffice/internal/models"
	"retail-backoffice/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PromotionService handles the promotion catalog
type PromotionService struct {
	promotions PromotionRepo
	cache      PromotionCache
	publisher  EventPublisher
	metrics    MetricsSink
	logger     *zap.Logger
}

// NewPromotionService creates a new promotion service. cache may be nil,
// in which case every active-promotion read goes to the store.
func NewPromotionService(promotions PromotionRepo, cache PromotionCache, publisher EventPublisher, metrics MetricsSink) *PromotionService {
	return &PromotionService{
		promotions: promotions,
		cache:      cache,
		publisher:  publisher,
		metrics:    metrics,
		logger:     util.GetLogger(),
	}
}

// PromotionRequest carries promotion fields for create and update
type PromotionRequest struct {
	Name                 string    `json:"name" binding:"required"`
	Description          string    `json:"description"`
	Type                 string    `json:"type" binding:"required"`
	BuyQuantity          int       `json:"buy_quantity"`
	FreeQuantity         int       `json:"free_quantity"`
	DiscountValue        float64   `json:"discount_value"`
	StartDate            time.Time `json:"start_date"`
	EndDate              time.Time `json:"end_date"`
	Active               bool      `json:"active"`
	ApplicableCategories []string  `json:"applicable_categories"`
}

// CreatePromotion adds a promotion rule
func (s *PromotionService) CreatePromotion(ctx context.Context, req *PromotionRequest) (*models.Promotion, error) {
	promoType, err := models.ParsePromotionType(req.Type)
	if err != nil {
		return nil, err
	}

	promotion := &models.Promotion{
		ID:                   uuid.New().String(),
		Name:                 req.Name,
		Description:          req.Description,
		Type:                 promoType,
		BuyQuantity:          req.BuyQuantity,
		FreeQuantity:         req.FreeQuantity,
		DiscountValue:        req.DiscountValue,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Active:               req.Active,
		ApplicableCategories: req.ApplicableCategories,
	}

	if err := s.promotions.SavePromotion(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to save promotion: %w", err)
	}

	s.invalidateCache(ctx)
	return promotion, nil
}

// GetPromotion retrieves a promotion by ID
func (s *PromotionService) GetPromotion(ctx context.Context, id string) (*models.Promotion, error) {
	return s.promotions.GetPromotionByID(ctx, id)
}

// GetPromotions lists all promotions
func (s *PromotionService) GetPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.promotions.GetPromotions(ctx)
}

// GetActivePromotions lists active promotions, served from the cache
// when possible
func (s *PromotionService) GetActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	if s.cache != nil {
		if promotions, ok := s.cache.GetActivePromotions(ctx); ok {
			return promotions, nil
		}
	}

	promotions, err := s.promotions.GetActivePromotions(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetActivePromotions(ctx, promotions); err != nil {
			s.logger.Warn("Failed to cache active promotions", zap.Error(err))
		}
	}
	return promotions, nil
}

// UpdatePromotion replaces all mutable fields of a promotion
func (s *PromotionService) UpdatePromotion(ctx context.Context, id string, req *PromotionRequest) (*models.Promotion, error) {
	promoType, err := models.ParsePromotionType(req.Type)
	if err != nil {
		return nil, err
	}

	promotion, err := s.promotions.GetPromotionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	promotion.Name = req.Name
	promotion.Description = req.Description
	promotion.Type = promoType
	promotion.BuyQuantity = req.BuyQuantity
	promotion.FreeQuantity = req.FreeQuantity
	promotion.DiscountValue = req.DiscountValue
	promotion.StartDate = req.StartDate
	promotion.EndDate = req.EndDate
	promotion.Active = req.Active
	promotion.ApplicableCategories = req.ApplicableCategories

	if err := s.promotions.SavePromotion(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to save promotion: %w", err)
	}

	s.invalidateCache(ctx)
	return promotion, nil
}

// ActivatePromotion sets the active flag. Idempotent.
func (s *PromotionService) ActivatePromotion(ctx context.Context, id string) (*models.Promotion, error) {
	return s.setActive(ctx, id, true)
}

// DeactivatePromotion clears the active flag. Idempotent.
func (s *PromotionService) DeactivatePromotion(ctx context.Context, id string) (*models.Promotion, error) {
	return s.setActive(ctx, id, false)
}

func (s *PromotionService) setActive(ctx context.Context, id string, active bool) (*models.Promotion, error) {
	promotion, err := s.promotions.GetPromotionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	promotion.Active = active
	if err := s.promotions.SavePromotion(ctx, promotion); err != nil {
		return nil, fmt.Errorf("failed to save promotion: %w", err)
	}

	s.invalidateCache(ctx)
	return promotion, nil
}

// DeletePromotion removes a promotion
func (s *PromotionService) DeletePromotion(ctx context.Context, id string) error {
	if err := s.promotions.DeletePromotion(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// SweepExpiredPromotions deactivates and persists every active promotion
// whose end date has passed. Runs on the daily sweep; in-flight
// transactions are not coordinated with.
func (s *PromotionService) SweepExpiredPromotions(ctx context.Context, now time.Time) (int, error) {
	active, err := s.promotions.GetActivePromotions(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for i := range active {
		promotion := &active[i]
		if !promotion.EndDate.Before(now) {
			continue
		}

		s.logger.Warn("Promotion active past its end date, deactivating",
			zap.String("promotion_id", promotion.ID),
			zap.String("name", promotion.Name),
			zap.Time("end_date", promotion.EndDate))

		promotion.Active = false
		if err := s.promotions.SavePromotion(ctx, promotion); err != nil {
			s.logger.Error("Failed to deactivate expired promotion",
				zap.String("promotion_id", promotion.ID),
				zap.Error(err))
			continue
		}

		swept++
		s.metrics.PromotionSwept()

		if s.publisher != nil {
			event := &models.PromotionDeactivatedEvent{
				BaseEvent: models.BaseEvent{
					EventID:   uuid.New().String(),
					EventType: models.EventTypePromotionDeactivated,
					Timestamp: time.Now(),
				},
				PromotionID: promotion.ID,
				Name:        promotion.Name,
				EndDate:     promotion.EndDate,
			}
			if err := s.publisher.PublishPromotionDeactivated(ctx, event); err != nil {
				s.logger.Error("Failed to publish PromotionDeactivated event", zap.Error(err))
			}
		}
	}

	if swept > 0 {
		s.invalidateCache(ctx)
	}
	return swept, nil
}

func (s *PromotionService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Failed to invalidate promotion cache", zap.Error(err))
	}
}
