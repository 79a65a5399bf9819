package service

import (
	"context"
	"time"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"
)

// fakeStore is an in-memory stand-in for the Mongo store. Gets return
// copies so staged mutations only land on Save, matching the document
// store's decode-per-read behavior.
type fakeStore struct {
	users        map[string]models.User
	products     map[string]models.Product
	promotions   map[string]models.Promotion
	cards        map[string]models.LoyaltyCard
	transactions map[string]models.Transaction
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[string]models.User),
		products:     make(map[string]models.Product),
		promotions:   make(map[string]models.Promotion),
		cards:        make(map[string]models.LoyaltyCard),
		transactions: make(map[string]models.Transaction),
	}
}

func (f *fakeStore) SaveUser(_ context.Context, user *models.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %s", id)
	}
	return &user, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.NotFoundf("user %s", id)
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) SaveProduct(_ context.Context, product *models.Product) error {
	f.products[product.ID] = *product
	return nil
}

func (f *fakeStore) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, apperrors.NotFoundf("product %s", id)
	}
	return &product, nil
}

func (f *fakeStore) GetProducts(_ context.Context) ([]models.Product, error) {
	var products []models.Product
	for _, p := range f.products {
		products = append(products, p)
	}
	return products, nil
}

func (f *fakeStore) DeleteProduct(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeStore) SavePromotion(_ context.Context, promotion *models.Promotion) error {
	f.promotions[promotion.ID] = *promotion
	return nil
}

func (f *fakeStore) GetPromotionByID(_ context.Context, id string) (*models.Promotion, error) {
	promotion, ok := f.promotions[id]
	if !ok {
		return nil, apperrors.NotFoundf("promotion %s", id)
	}
	return &promotion, nil
}

func (f *fakeStore) GetPromotions(_ context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	for _, p := range f.promotions {
		promotions = append(promotions, p)
	}
	return promotions, nil
}

func (f *fakeStore) GetActivePromotions(_ context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	for _, p := range f.promotions {
		if p.Active {
			promotions = append(promotions, p)
		}
	}
	return promotions, nil
}

func (f *fakeStore) DeletePromotion(_ context.Context, id string) error {
	if _, ok := f.promotions[id]; !ok {
		return apperrors.NotFoundf("promotion %s", id)
	}
	delete(f.promotions, id)
	return nil
}

func (f *fakeStore) SaveLoyaltyCard(_ context.Context, card *models.LoyaltyCard) error {
	f.cards[card.ID] = *card
	return nil
}

func (f *fakeStore) GetLoyaltyCardByID(_ context.Context, id string) (*models.LoyaltyCard, error) {
	card, ok := f.cards[id]
	if !ok {
		return nil, apperrors.NotFoundf("loyalty card %s", id)
	}
	return &card, nil
}

func (f *fakeStore) GetLoyaltyCardsByUser(_ context.Context, userID string) ([]models.LoyaltyCard, error) {
	var cards []models.LoyaltyCard
	for _, c := range f.cards {
		if c.UserID == userID {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

func (f *fakeStore) GetLoyaltyCards(_ context.Context) ([]models.LoyaltyCard, error) {
	var cards []models.LoyaltyCard
	for _, c := range f.cards {
		cards = append(cards, c)
	}
	return cards, nil
}

func (f *fakeStore) DeleteLoyaltyCard(_ context.Context, id string) error {
	if _, ok := f.cards[id]; !ok {
		return apperrors.NotFoundf("loyalty card %s", id)
	}
	delete(f.cards, id)
	return nil
}

func (f *fakeStore) SaveTransaction(_ context.Context, tx *models.Transaction) error {
	f.transactions[tx.ID] = *tx
	return nil
}

func (f *fakeStore) GetTransactionByID(_ context.Context, id string) (*models.Transaction, error) {
	tx, ok := f.transactions[id]
	if !ok {
		return nil, apperrors.NotFoundf("transaction %s", id)
	}
	return &tx, nil
}

func (f *fakeStore) GetTransactions(_ context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	for _, tx := range f.transactions {
		txs = append(txs, tx)
	}
	return txs, nil
}

func (f *fakeStore) GetTransactionsByUser(_ context.Context, userID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	for _, tx := range f.transactions {
		if tx.UserID == userID {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (f *fakeStore) GetTransactionsByDateRange(_ context.Context, start, end time.Time) ([]models.Transaction, error) {
	var txs []models.Transaction
	for _, tx := range f.transactions {
		if !tx.Date.Before(start) && !tx.Date.After(end) {
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func (f *fakeStore) DeleteTransaction(_ context.Context, id string) error {
	delete(f.transactions, id)
	return nil
}

// recMetrics records sink invocations for assertions
type recMetrics struct {
	created, deleted int
	failed           map[string]int
	discountGranted  float64
	loyaltySkipped   map[string]int
	usersCreated     int
	usersDeleted     int
	cardsIssued      int
	promotionsSwept  int
}

func newRecMetrics() *recMetrics {
	return &recMetrics{
		failed:         make(map[string]int),
		loyaltySkipped: make(map[string]int),
	}
}

func (m *recMetrics) TransactionCreated(string)            { m.created++ }
func (m *recMetrics) TransactionDeleted(string)            { m.deleted++ }
func (m *recMetrics) TransactionFailed(reason string)      { m.failed[reason]++ }
func (m *recMetrics) DiscountGranted(amount float64)       { m.discountGranted += amount }
func (m *recMetrics) LoyaltyDiscountSkipped(reason string) { m.loyaltySkipped[reason]++ }
func (m *recMetrics) UserCreated()                         { m.usersCreated++ }
func (m *recMetrics) UserDeleted()                         { m.usersDeleted++ }
func (m *recMetrics) CardIssued()                          { m.cardsIssued++ }
func (m *recMetrics) PromotionSwept()                      { m.promotionsSwept++ }

// recPublisher counts published events per type
type recPublisher struct {
	published map[string]int
}

func newRecPublisher() *recPublisher {
	return &recPublisher{published: make(map[string]int)}
}

func (p *recPublisher) PublishTransactionCreated(_ context.Context, event *models.TransactionCreatedEvent) error {
	p.published[event.EventType]++
	return nil
}

func (p *recPublisher) PublishTransactionDeleted(_ context.Context, event *models.TransactionDeletedEvent) error {
	p.published[event.EventType]++
	return nil
}

func (p *recPublisher) PublishPromotionDeactivated(_ context.Context, event *models.PromotionDeactivatedEvent) error {
	p.published[event.EventType]++
	return nil
}

func (p *recPublisher) PublishLowStock(_ context.Context, event *models.LowStockEvent) error {
	p.published[event.EventType]++
	return nil
}

func (p *recPublisher) PublishCardExpiring(_ context.Context, event *models.CardExpiringEvent) error {
	p.published[event.EventType]++
	return nil
}

// memCache is an in-memory PromotionCache
type memCache struct {
	data          []models.Promotion
	ok            bool
	sets          int
	invalidations int
}

func (c *memCache) GetActivePromotions(context.Context) ([]models.Promotion, bool) {
	return c.data, c.ok
}

func (c *memCache) SetActivePromotions(_ context.Context, promotions []models.Promotion) error {
	c.data = promotions
	c.ok = true
	c.sets++
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.data = nil
	c.ok = false
	c.invalidations++
	return nil
}

// testEnv bundles the services wired on a shared fake store
type testEnv struct {
	store        *fakeStore
	metrics      *recMetrics
	publisher    *recPublisher
	loyalty      *LoyaltyCardService
	users        *UserService
	products     *ProductService
	promotions   *PromotionService
	transactions *TransactionService
}

func newTestEnv() *testEnv {
	fs := newFakeStore()
	metrics := newRecMetrics()
	publisher := newRecPublisher()

	loyalty := NewLoyaltyCardService(fs, fs, publisher, metrics)
	users := NewUserService(fs, loyalty, metrics)
	products := NewProductService(fs, publisher, 5)
	promotions := NewPromotionService(fs, nil, publisher, metrics)
	transactions := NewTransactionService(fs, fs, products, loyalty, promotions, publisher, metrics)

	return &testEnv{
		store:        fs,
		metrics:      metrics,
		publisher:    publisher,
		loyalty:      loyalty,
		users:        users,
		products:     products,
		promotions:   promotions,
		transactions: transactions,
	}
}

func (e *testEnv) addUser(id string) {
	e.store.users[id] = models.User{ID: id, Name: "user " + id, LoyaltyCardIDs: []string{}}
}

func (e *testEnv) addProduct(id string, price float64, stock int, category string) {
	e.store.products[id] = models.Product{
		ID:        id,
		Name:      "product " + id,
		Price:     price,
		StockSize: stock,
		InStock:   stock > 0,
		Category:  category,
	}
}

func (e *testEnv) addBuyXGetYPromotion(id string, buy, free int, categories ...string) {
	e.store.promotions[id] = models.Promotion{
		ID:                   id,
		Name:                 "promo " + id,
		Type:                 models.PromotionBuyXGetYFree,
		BuyQuantity:          buy,
		FreeQuantity:         free,
		StartDate:            time.Now().AddDate(0, -1, 0),
		EndDate:              time.Now().AddDate(0, 1, 0),
		Active:               true,
		ApplicableCategories: categories,
	}
}

func (e *testEnv) addCard(id, userID, cardType string, points int) {
	e.store.cards[id] = models.LoyaltyCard{
		ID:                 id,
		UserID:             userID,
		CardType:           cardType,
		DiscountPercentage: models.CardDiscountPercentage(cardType),
		Points:             points,
		IssueDate:          time.Now(),
		ExpiryDate:         time.Now().AddDate(2, 0, 0),
	}
}
