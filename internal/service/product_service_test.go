package service

import (
	"context"
	"testing"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductDerivesInStock(t *testing.T) {
	env := newTestEnv()

	product, err := env.products.CreateProduct(context.Background(), &ProductRequest{
		Name:      "cola",
		Price:     2.5,
		StockSize: 10,
		Category:  "drinks",
	})
	require.NoError(t, err)
	assert.True(t, product.InStock)

	empty, err := env.products.CreateProduct(context.Background(), &ProductRequest{
		Name:      "sold out",
		Price:     1,
		StockSize: 0,
	})
	require.NoError(t, err)
	assert.False(t, empty.InStock)
}

func TestCreateProductRejectsNegativeStock(t *testing.T) {
	env := newTestEnv()

	_, err := env.products.CreateProduct(context.Background(), &ProductRequest{
		Name:      "cola",
		StockSize: -1,
	})
	assert.True(t, apperrors.IsInvalidInput(err))
	assert.Empty(t, env.store.products)
}

func TestUpdateProduct(t *testing.T) {
	env := newTestEnv()
	env.addProduct("p1", 2.5, 10, "drinks")

	product, err := env.products.UpdateProduct(context.Background(), "p1", &ProductRequest{
		Name:      "cola zero",
		Price:     3,
		StockSize: 0,
		Category:  "drinks",
	})
	require.NoError(t, err)
	assert.Equal(t, "cola zero", product.Name)
	assert.False(t, product.InStock)

	_, err = env.products.UpdateProduct(context.Background(), "p1", &ProductRequest{
		Name:      "cola zero",
		StockSize: -5,
	})
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = env.products.UpdateProduct(context.Background(), "ghost", &ProductRequest{Name: "x"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestLowStockAlert(t *testing.T) {
	env := newTestEnv()

	_, err := env.products.CreateProduct(context.Background(), &ProductRequest{
		Name:      "rare",
		Price:     99,
		StockSize: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, env.publisher.published[models.EventTypeLowStock])

	_, err = env.products.CreateProduct(context.Background(), &ProductRequest{
		Name:      "plentiful",
		Price:     1,
		StockSize: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, env.publisher.published[models.EventTypeLowStock])
}

func TestUserLifecycle(t *testing.T) {
	env := newTestEnv()

	user, err := env.users.CreateUser(context.Background(), &CreateUserRequest{
		Name:  "Ana",
		Email: "ana@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 1, env.metrics.usersCreated)

	got, err := env.users.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	require.NoError(t, env.users.DeleteUser(context.Background(), user.ID))
	assert.Equal(t, 1, env.metrics.usersDeleted)

	_, err = env.users.GetUser(context.Background(), user.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestIssueCardToUserDelegates(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")

	card, err := env.users.IssueCardToUser(context.Background(), "u1", models.CardPremium)
	require.NoError(t, err)
	assert.Equal(t, 15.0, card.DiscountPercentage)

	cards, err := env.users.GetUserCards(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}
