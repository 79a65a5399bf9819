package service

import (
	"context"
	"fmt"

	"retail-backoffice/internal/models"
	"retail-backoffice/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService handles user management
type UserService struct {
	users   UserRepo
	loyalty *LoyaltyCardService
	metrics MetricsSink
	logger  *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users UserRepo, loyalty *LoyaltyCardService, metrics MetricsSink) *UserService {
	return &UserService{
		users:   users,
		loyalty: loyalty,
		metrics: metrics,
		logger:  util.GetLogger(),
	}
}

// CreateUserRequest represents a request to register a user
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// CreateUser registers a new user
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	user := &models.User{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Email:          req.Email,
		LoyaltyCardIDs: []string{},
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.metrics.UserCreated()
	s.logger.Info("User created", zap.String("user_id", user.ID))
	return user, nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// DeleteUser removes a user
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.metrics.UserDeleted()
	s.logger.Info("User deleted", zap.String("user_id", id))
	return nil
}

// IssueCardToUser issues a new loyalty card for the user
func (s *UserService) IssueCardToUser(ctx context.Context, userID, cardType string) (*models.LoyaltyCard, error) {
	return s.loyalty.IssueCard(ctx, userID, cardType)
}

// GetUserCards lists the loyalty cards held by the user
func (s *UserService) GetUserCards(ctx context.Context, userID string) ([]models.LoyaltyCard, error) {
	return s.loyalty.GetCardsByUser(ctx, userID)
}
