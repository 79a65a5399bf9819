package store

import (
	"context"
	"errors"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SavePromotion upserts a promotion document
func (s *Store) SavePromotion(ctx context.Context, promotion *models.Promotion) error {
	opts := replaceUpsert()
	_, err := s.db.Collection(collPromotions).ReplaceOne(ctx, bson.M{"_id": promotion.ID}, promotion, opts)
	return err
}

// GetPromotionByID retrieves a promotion by ID
func (s *Store) GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error) {
	var promotion models.Promotion
	err := s.db.Collection(collPromotions).FindOne(ctx, bson.M{"_id": id}).Decode(&promotion)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFoundf("promotion %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &promotion, nil
}

// GetPromotions retrieves all promotions
func (s *Store) GetPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.findPromotions(ctx, bson.M{})
}

// GetActivePromotions retrieves promotions with the active flag set
func (s *Store) GetActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.findPromotions(ctx, bson.M{"active": true})
}

func (s *Store) findPromotions(ctx context.Context, filter bson.M) ([]models.Promotion, error) {
	cursor, err := s.db.Collection(collPromotions).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var promotions []models.Promotion
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

// DeletePromotion removes a promotion document
func (s *Store) DeletePromotion(ctx context.Context, id string) error {
	res, err := s.db.Collection(collPromotions).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFoundf("promotion %s", id)
	}
	return nil
}
