package models

import (
	"time"

	"retail-backoffice/internal/apperrors"
)

// User represents a store customer
type User struct {
	ID             string   `bson:"_id" json:"id"`
	Name           string   `bson:"name" json:"name"`
	Email          string   `bson:"email" json:"email"`
	LoyaltyCardIDs []string `bson:"loyalty_card_ids" json:"loyalty_card_ids"`
}

// Product represents a product in the catalog
type Product struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Price       float64 `bson:"price" json:"price"`
	StockSize   int     `bson:"stock_size" json:"stock_size"`
	InStock     bool    `bson:"in_stock" json:"in_stock"`
	Category    string  `bson:"category" json:"category"`
	Brand       string  `bson:"brand" json:"brand"`
	Description string  `bson:"description" json:"description"`
}

// Promotion types
const (
	PromotionBuyXGetYFree        = "BUY_X_GET_Y_FREE"
	PromotionPercentDiscount     = "PERCENT_DISCOUNT"
	PromotionFixedAmountDiscount = "FIXED_AMOUNT_DISCOUNT"
)

// ParsePromotionType validates a promotion type string
func ParsePromotionType(s string) (string, error) {
	switch s {
	case PromotionBuyXGetYFree, PromotionPercentDiscount, PromotionFixedAmountDiscount:
		return s, nil
	}
	return "", apperrors.InvalidInputf("unknown promotion type: %s", s)
}

// Promotion represents a promotion rule
type Promotion struct {
	ID                   string    `bson:"_id" json:"id"`
	Name                 string    `bson:"name" json:"name"`
	Description          string    `bson:"description" json:"description"`
	Type                 string    `bson:"type" json:"type"`
	BuyQuantity          int       `bson:"buy_quantity" json:"buy_quantity"`
	FreeQuantity         int       `bson:"free_quantity" json:"free_quantity"`
	DiscountValue        float64   `bson:"discount_value" json:"discount_value"`
	StartDate            time.Time `bson:"start_date" json:"start_date"`
	EndDate              time.Time `bson:"end_date" json:"end_date"`
	Active               bool      `bson:"active" json:"active"`
	ApplicableCategories []string  `bson:"applicable_categories" json:"applicable_categories"`
}

// Loyalty card types
const (
	CardBronze  = "BRONZE"
	CardGold    = "GOLD"
	CardPremium = "PREMIUM"
)

// cardDiscounts maps card type to its fixed discount percentage
var cardDiscounts = map[string]float64{
	CardBronze:  5.0,
	CardGold:    10.0,
	CardPremium: 15.0,
}

// ParseCardType validates a card type string
func ParseCardType(s string) (string, error) {
	if _, ok := cardDiscounts[s]; !ok {
		return "", apperrors.InvalidInputf("unknown card type: %s", s)
	}
	return s, nil
}

// CardDiscountPercentage returns the fixed discount percentage for a card type
func CardDiscountPercentage(cardType string) float64 {
	return cardDiscounts[cardType]
}

// LoyaltyCard represents a loyalty card held by a user
type LoyaltyCard struct {
	ID                 string    `bson:"_id" json:"id"`
	UserID             string    `bson:"user_id" json:"user_id"`
	CardType           string    `bson:"card_type" json:"card_type"`
	DiscountPercentage float64   `bson:"discount_percentage" json:"discount_percentage"`
	Points             int       `bson:"points" json:"points"`
	IssueDate          time.Time `bson:"issue_date" json:"issue_date"`
	ExpiryDate         time.Time `bson:"expiry_date" json:"expiry_date"`
}

// NewLoyaltyCard issues a card of the given type, valid for two years
func NewLoyaltyCard(id, userID, cardType string, now time.Time) *LoyaltyCard {
	return &LoyaltyCard{
		ID:                 id,
		UserID:             userID,
		CardType:           cardType,
		DiscountPercentage: cardDiscounts[cardType],
		Points:             0,
		IssueDate:          now,
		ExpiryDate:         now.AddDate(2, 0, 0),
	}
}

// TransactionEntry is one cart line: a product and the quantity bought
type TransactionEntry struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// Transaction represents a completed point-of-sale transaction.
// Immutable once persisted; deletion reverses its stock and point effects.
type Transaction struct {
	ID                string             `bson:"_id" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	Products          []TransactionEntry `bson:"products" json:"products"`
	LoyaltyCardID     string             `bson:"loyalty_card_id,omitempty" json:"loyalty_card_id,omitempty"`
	UseDiscount       bool               `bson:"use_discount" json:"use_discount"`
	Date              time.Time          `bson:"date" json:"date"`
	TotalAmount       float64            `bson:"total_amount" json:"total_amount"`
	PromotionDiscount float64            `bson:"promotion_discount" json:"promotion_discount"`
	LoyaltyDiscount   float64            `bson:"loyalty_discount" json:"loyalty_discount"`
	TotalDiscount     float64            `bson:"total_discount" json:"total_discount"`
	FinalAmount       float64            `bson:"final_amount" json:"final_amount"`
}
