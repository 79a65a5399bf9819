package service

import (
	"context"
	"testing"
	"time"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCardPerTypeDiscounts(t *testing.T) {
	cases := []struct {
		cardType string
		percent  float64
	}{
		{models.CardBronze, 5.0},
		{models.CardGold, 10.0},
		{models.CardPremium, 15.0},
	}

	for _, tc := range cases {
		t.Run(tc.cardType, func(t *testing.T) {
			env := newTestEnv()
			env.addUser("u1")

			card, err := env.loyalty.IssueCard(context.Background(), "u1", tc.cardType)
			require.NoError(t, err)

			assert.Equal(t, tc.percent, card.DiscountPercentage)
			assert.Equal(t, 0, card.Points)
			assert.WithinDuration(t, time.Now().AddDate(2, 0, 0), card.ExpiryDate, time.Minute)
			assert.Contains(t, env.store.users["u1"].LoyaltyCardIDs, card.ID)
			assert.Equal(t, 1, env.metrics.cardsIssued)
		})
	}
}

func TestIssueCardValidation(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")

	_, err := env.loyalty.IssueCard(context.Background(), "u1", "PLATINUM")
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = env.loyalty.IssueCard(context.Background(), "ghost", models.CardBronze)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpgradeCard(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")
	env.addCard("c1", "u1", models.CardBronze, 40)

	card, err := env.loyalty.UpgradeCard(context.Background(), "c1", models.CardPremium)
	require.NoError(t, err)

	assert.Equal(t, models.CardPremium, card.CardType)
	assert.Equal(t, 15.0, card.DiscountPercentage)
	assert.Equal(t, 40, card.Points)
	assert.WithinDuration(t, time.Now().AddDate(2, 0, 0), card.ExpiryDate, time.Minute)

	_, err = env.loyalty.UpgradeCard(context.Background(), "ghost", models.CardGold)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddPointsAccumulates(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")
	env.addCard("c1", "u1", models.CardBronze, 10)

	card, err := env.loyalty.AddPoints(context.Background(), "c1", 7)
	require.NoError(t, err)
	assert.Equal(t, 17, card.Points)

	card, err = env.loyalty.AddPoints(context.Background(), "c1", 3)
	require.NoError(t, err)
	assert.Equal(t, 20, card.Points)
}

func TestCalculateDiscount(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")
	env.addCard("c1", "u1", models.CardGold, 0)

	discount, err := env.loyalty.CalculateDiscount(context.Background(), "c1", 250)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, discount, 1e-9)

	_, err = env.loyalty.CalculateDiscount(context.Background(), "ghost", 250)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteCardUnlinksFromUser(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")

	card, err := env.loyalty.IssueCard(context.Background(), "u1", models.CardGold)
	require.NoError(t, err)
	require.Contains(t, env.store.users["u1"].LoyaltyCardIDs, card.ID)

	require.NoError(t, env.loyalty.DeleteCard(context.Background(), card.ID))
	assert.NotContains(t, env.store.users["u1"].LoyaltyCardIDs, card.ID)
	assert.Empty(t, env.store.cards)

	err = env.loyalty.DeleteCard(context.Background(), card.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetCardsByUser(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")
	env.addCard("c1", "u1", models.CardBronze, 0)
	env.addCard("c2", "other", models.CardBronze, 0)

	cards, err := env.loyalty.GetCardsByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "c1", cards[0].ID)

	_, err = env.loyalty.GetCardsByUser(context.Background(), "ghost")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCheckExpiringCards(t *testing.T) {
	env := newTestEnv()
	env.addUser("u1")
	env.addCard("soon", "u1", models.CardBronze, 0)
	env.addCard("later", "u1", models.CardBronze, 0)

	soon := env.store.cards["soon"]
	soon.ExpiryDate = time.Now().AddDate(0, 0, 10)
	env.store.cards["soon"] = soon

	require.NoError(t, env.loyalty.CheckExpiringCards(context.Background(), 30))

	// log-and-alert only: no card was mutated
	assert.Equal(t, 1, env.publisher.published[models.EventTypeCardExpiring])
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 10), env.store.cards["soon"].ExpiryDate, time.Minute)
}
