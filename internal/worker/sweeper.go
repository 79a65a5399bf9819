package worker

import (
	"context"
	"time"

	"retail-backoffice/internal/service"
	"retail-backoffice/internal/util"

	"go.uber.org/zap"
)

// Sweeper runs the daily maintenance passes: deactivating promotions
// past their end date and logging loyalty cards close to expiry. It does
// not coordinate with concurrent request handling.
type Sweeper struct {
	promotions *service.PromotionService
	loyalty    *service.LoyaltyCardService
	interval   time.Duration
	warnDays   int
	logger     *zap.Logger
}

// NewSweeper creates a new sweeper
func NewSweeper(promotions *service.PromotionService, loyalty *service.LoyaltyCardService, interval time.Duration, warnDays int) *Sweeper {
	return &Sweeper{
		promotions: promotions,
		loyalty:    loyalty,
		interval:   interval,
		warnDays:   warnDays,
		logger:     util.GetLogger(),
	}
}

// Start runs one sweep immediately and then on every tick until the
// context is cancelled
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting maintenance sweeper", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	swept, err := s.promotions.SweepExpiredPromotions(ctx, time.Now())
	if err != nil {
		s.logger.Error("Promotion sweep failed", zap.Error(err))
	} else if swept > 0 {
		s.logger.Info("Promotion sweep finished", zap.Int("deactivated", swept))
	}

	if err := s.loyalty.CheckExpiringCards(ctx, s.warnDays); err != nil {
		s.logger.Error("Card expiry sweep failed", zap.Error(err))
	}
}
