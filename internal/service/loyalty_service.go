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

// LoyaltyCardService handles loyalty card lifecycle and discounts
type LoyaltyCardService struct {
	cards     LoyaltyCardRepo
	users     UserRepo
	publisher EventPublisher
	metrics   MetricsSink
	logger    *zap.Logger
}

// NewLoyaltyCardService creates a new loyalty card service
func NewLoyaltyCardService(cards LoyaltyCardRepo, users UserRepo, publisher EventPublisher, metrics MetricsSink) *LoyaltyCardService {
	return &LoyaltyCardService{
		cards:     cards,
		users:     users,
		publisher: publisher,
		metrics:   metrics,
		logger:    util.GetLogger(),
	}
}

// IssueCard creates a card for the user and appends its id to the user's
// card list
func (s *LoyaltyCardService) IssueCard(ctx context.Context, userID, cardType string) (*models.LoyaltyCard, error) {
	parsed, err := models.ParseCardType(cardType)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	card := models.NewLoyaltyCard(uuid.New().String(), userID, parsed, time.Now())
	if err := s.cards.SaveLoyaltyCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save loyalty card: %w", err)
	}

	user.LoyaltyCardIDs = append(user.LoyaltyCardIDs, card.ID)
	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to link card to user: %w", err)
	}

	s.metrics.CardIssued()
	s.logger.Info("Loyalty card issued",
		zap.String("card_id", card.ID),
		zap.String("user_id", userID),
		zap.String("card_type", parsed))
	return card, nil
}

// GetCard retrieves a card by ID
func (s *LoyaltyCardService) GetCard(ctx context.Context, id string) (*models.LoyaltyCard, error) {
	return s.cards.GetLoyaltyCardByID(ctx, id)
}

// GetCardsByUser lists all cards held by a user
func (s *LoyaltyCardService) GetCardsByUser(ctx context.Context, userID string) ([]models.LoyaltyCard, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.cards.GetLoyaltyCardsByUser(ctx, userID)
}

// UpgradeCard changes the card type, resets the discount percentage per
// the fixed per-type table, and extends expiry to two years from now
func (s *LoyaltyCardService) UpgradeCard(ctx context.Context, cardID, newType string) (*models.LoyaltyCard, error) {
	parsed, err := models.ParseCardType(newType)
	if err != nil {
		return nil, err
	}

	card, err := s.cards.GetLoyaltyCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	card.CardType = parsed
	card.DiscountPercentage = models.CardDiscountPercentage(parsed)
	card.ExpiryDate = time.Now().AddDate(2, 0, 0)

	if err := s.cards.SaveLoyaltyCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save loyalty card: %w", err)
	}

	s.logger.Info("Loyalty card upgraded",
		zap.String("card_id", cardID),
		zap.String("card_type", parsed))
	return card, nil
}

// AddPoints increments the card's point balance
func (s *LoyaltyCardService) AddPoints(ctx context.Context, cardID string, points int) (*models.LoyaltyCard, error) {
	card, err := s.cards.GetLoyaltyCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	card.Points += points
	if err := s.cards.SaveLoyaltyCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to save loyalty card: %w", err)
	}
	return card, nil
}

// CalculateDiscount returns the card's percentage discount applied to amount
func (s *LoyaltyCardService) CalculateDiscount(ctx context.Context, cardID string, amount float64) (float64, error) {
	card, err := s.cards.GetLoyaltyCardByID(ctx, cardID)
	if err != nil {
		return 0, err
	}
	return amount * (card.DiscountPercentage / 100.0), nil
}

// DeleteCard removes the card and unlinks it from its owner
func (s *LoyaltyCardService) DeleteCard(ctx context.Context, cardID string) error {
	card, err := s.cards.GetLoyaltyCardByID(ctx, cardID)
	if err != nil {
		return err
	}

	// Unlink from the owner when the owner still exists; a dangling
	// user reference does not block card deletion.
	if user, err := s.users.GetUserByID(ctx, card.UserID); err == nil {
		filtered := user.LoyaltyCardIDs[:0]
		for _, id := range user.LoyaltyCardIDs {
			if id != cardID {
				filtered = append(filtered, id)
			}
		}
		user.LoyaltyCardIDs = filtered
		if err := s.users.SaveUser(ctx, user); err != nil {
			return fmt.Errorf("failed to unlink card from user: %w", err)
		}
	}

	return s.cards.DeleteLoyaltyCard(ctx, cardID)
}

// CheckExpiringCards logs every card expiring within the warning window.
// Log and event only; no remediation.
func (s *LoyaltyCardService) CheckExpiringCards(ctx context.Context, warnDays int) error {
	cards, err := s.cards.GetLoyaltyCards(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().AddDate(0, 0, warnDays)
	for i := range cards {
		card := &cards[i]
		if !card.ExpiryDate.Before(cutoff) {
			continue
		}

		s.logger.Warn("Loyalty card expiring soon",
			zap.String("card_id", card.ID),
			zap.String("user_id", card.UserID),
			zap.Time("expiry_date", card.ExpiryDate))

		if s.publisher != nil {
			event := &models.CardExpiringEvent{
				BaseEvent: models.BaseEvent{
					EventID:   uuid.New().String(),
					EventType: models.EventTypeCardExpiring,
					Timestamp: time.Now(),
				},
				CardID:     card.ID,
				UserID:     card.UserID,
				ExpiryDate: card.ExpiryDate,
			}
			if err := s.publisher.PublishCardExpiring(ctx, event); err != nil {
				s.logger.Error("Failed to publish CardExpiring event", zap.Error(err))
			}
		}
	}
	return nil
}
