package store

import (
	"context"
	"errors"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SaveUser upserts a user document
func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	opts := replaceUpsert()
	_, err := s.db.Collection(collUsers).ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	return err
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFoundf("user %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user document
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	res, err := s.db.Collection(collUsers).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFoundf("user %s", id)
	}
	return nil
}
