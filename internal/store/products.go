package store

import (
	"context"
	"errors"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SaveProduct upserts a product document
func (s *Store) SaveProduct(ctx context.Context, product *models.Product) error {
	opts := replaceUpsert()
	_, err := s.db.Collection(collProducts).ReplaceOne(ctx, bson.M{"_id": product.ID}, product, opts)
	return err
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.Collection(collProducts).FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFoundf("product %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.db.Collection(collProducts).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteProduct removes a product document
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	_, err := s.db.Collection(collProducts).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
