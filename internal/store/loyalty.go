package store

import (
	"context"
	"errors"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SaveLoyaltyCard upserts a loyalty card document
func (s *Store) SaveLoyaltyCard(ctx context.Context, card *models.LoyaltyCard) error {
	opts := replaceUpsert()
	_, err := s.db.Collection(collLoyaltyCards).ReplaceOne(ctx, bson.M{"_id": card.ID}, card, opts)
	return err
}

// GetLoyaltyCardByID retrieves a loyalty card by ID
func (s *Store) GetLoyaltyCardByID(ctx context.Context, id string) (*models.LoyaltyCard, error) {
	var card models.LoyaltyCard
	err := s.db.Collection(collLoyaltyCards).FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFoundf("loyalty card %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// GetLoyaltyCardsByUser retrieves all cards belonging to a user
func (s *Store) GetLoyaltyCardsByUser(ctx context.Context, userID string) ([]models.LoyaltyCard, error) {
	cursor, err := s.db.Collection(collLoyaltyCards).Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var cards []models.LoyaltyCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// GetLoyaltyCards retrieves all loyalty cards
func (s *Store) GetLoyaltyCards(ctx context.Context) ([]models.LoyaltyCard, error) {
	cursor, err := s.db.Collection(collLoyaltyCards).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var cards []models.LoyaltyCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// DeleteLoyaltyCard removes a loyalty card document
func (s *Store) DeleteLoyaltyCard(ctx context.Context, id string) error {
	res, err := s.db.Collection(collLoyaltyCards).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFoundf("loyalty card %s", id)
	}
	return nil
}
