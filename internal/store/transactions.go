package store

import (
	"context"
	"errors"
	"time"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SaveTransaction upserts a transaction document
func (s *Store) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	opts := replaceUpsert()
	_, err := s.db.Collection(collTransactions).ReplaceOne(ctx, bson.M{"_id": tx.ID}, tx, opts)
	return err
}

// GetTransactionByID retrieves a transaction by ID
func (s *Store) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := s.db.Collection(collTransactions).FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.NotFoundf("transaction %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransactions retrieves all transactions
func (s *Store) GetTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.findTransactions(ctx, bson.M{})
}

// GetTransactionsByUser retrieves all transactions for a user
func (s *Store) GetTransactionsByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.findTransactions(ctx, bson.M{"user_id": userID})
}

// GetTransactionsByDateRange retrieves transactions with dates inside
// [start, end]
func (s *Store) GetTransactionsByDateRange(ctx context.Context, start, end time.Time) ([]models.Transaction, error) {
	return s.findTransactions(ctx, bson.M{"date": bson.M{"$gte": start, "$lte": end}})
}

func (s *Store) findTransactions(ctx context.Context, filter bson.M) ([]models.Transaction, error) {
	cursor, err := s.db.Collection(collTransactions).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var txs []models.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// DeleteTransaction removes a transaction document
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	_, err := s.db.Collection(collTransactions).DeleteOne(ctx, bson.M{"_id": id})
	return err
}
