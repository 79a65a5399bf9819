package service

import (
	"context"
	"fmt"
	"time"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/models"
	"retail-backoffice/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles the product catalog
type ProductService struct {
	products          ProductRepo
	publisher         EventPublisher
	logger            *zap.Logger
	lowStockThreshold int
}

// NewProductService creates a new product service
func NewProductService(products ProductRepo, publisher EventPublisher, lowStockThreshold int) *ProductService {
	return &ProductService{
		products:          products,
		publisher:         publisher,
		logger:            util.GetLogger(),
		lowStockThreshold: lowStockThreshold,
	}
}

// ProductRequest carries product fields for create and update
type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price"`
	StockSize   int     `json:"stock_size"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
}

// CreateProduct adds a product to the catalog
func (s *ProductService) CreateProduct(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if req.StockSize < 0 {
		return nil, apperrors.InvalidInputf("stock size must not be negative")
	}

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Price:       req.Price,
		StockSize:   req.StockSize,
		InStock:     req.StockSize > 0,
		Category:    req.Category,
		Brand:       req.Brand,
		Description: req.Description,
	}

	if err := s.products.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.checkLowStock(ctx, product)
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetProductByID(ctx, id)
}

// GetProducts lists the whole catalog
func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetProducts(ctx)
}

// UpdateProduct replaces the mutable fields of a product
func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *ProductRequest) (*models.Product, error) {
	product, err := s.products.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StockSize < 0 {
		return nil, apperrors.InvalidInputf("stock size must not be negative")
	}

	product.Name = req.Name
	product.Price = req.Price
	product.StockSize = req.StockSize
	product.InStock = req.StockSize > 0
	product.Category = req.Category
	product.Brand = req.Brand
	product.Description = req.Description

	if err := s.products.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	s.checkLowStock(ctx, product)
	return product, nil
}

// SaveStock persists a stock mutation coming out of the transaction
// workflow, re-deriving the in-stock flag
func (s *ProductService) SaveStock(ctx context.Context, product *models.Product) error {
	product.InStock = product.StockSize > 0
	if err := s.products.SaveProduct(ctx, product); err != nil {
		return fmt.Errorf("failed to save product stock: %w", err)
	}
	s.checkLowStock(ctx, product)
	return nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.DeleteProduct(ctx, id)
}

// checkLowStock logs and publishes an alert when a save leaves the
// product under the threshold. Observability only.
func (s *ProductService) checkLowStock(ctx context.Context, product *models.Product) {
	if product.StockSize >= s.lowStockThreshold {
		return
	}

	s.logger.Warn("Low stock for product",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("stock_size", product.StockSize))

	if s.publisher == nil {
		return
	}
	event := &models.LowStockEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeLowStock,
			Timestamp: time.Now(),
		},
		ProductID:   product.ID,
		ProductName: product.Name,
		StockSize:   product.StockSize,
	}
	if err := s.publisher.PublishLowStock(ctx, event); err != nil {
		s.logger.Error("Failed to publish LowStock event", zap.Error(err))
	}
}
