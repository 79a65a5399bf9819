package api

import (
	"net/http"
	"strconv"
	"time"

	"retail-backoffice/internal/apperrors"
	"retail-backoffice/internal/service"
	"retail-backoffice/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	users        *service.UserService
	products     *service.ProductService
	promotions   *service.PromotionService
	loyalty      *service.LoyaltyCardService
	transactions *service.TransactionService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	users *service.UserService,
	products *service.ProductService,
	promotions *service.PromotionService,
	loyalty *service.LoyaltyCardService,
	transactions *service.TransactionService,
) *Handler {
	return &Handler{
		users:        users,
		products:     products,
		promotions:   promotions,
		loyalty:      loyalty,
		transactions: transactions,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.POST("/users", h.createUser)
		api.GET("/users/:id", h.getUser)
		api.DELETE("/users/:id", h.deleteUser)
		api.POST("/users/:id/loyalty-cards", h.issueCardToUser)
		api.GET("/users/:id/loyalty-cards", h.getUserCards)

		api.POST("/loyalty-cards", h.issueCard)
		api.GET("/loyalty-cards/:id", h.getCard)
		api.PUT("/loyalty-cards/:id", h.upgradeCard)
		api.DELETE("/loyalty-cards/:id", h.deleteCard)
		api.GET("/loyalty-cards/:id/discount", h.calculateDiscount)

		api.POST("/products", h.createProduct)
		api.GET("/products", h.getProducts)
		api.GET("/products/:id", h.getProduct)
		api.PUT("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.POST("/promotions", h.createPromotion)
		api.GET("/promotions", h.getPromotions)
		api.GET("/promotions/active", h.getActivePromotions)
		api.GET("/promotions/:id", h.getPromotion)
		api.PUT("/promotions/:id", h.updatePromotion)
		api.DELETE("/promotions/:id", h.deletePromotion)
		api.POST("/promotions/:id/activate", h.activatePromotion)
		api.POST("/promotions/:id/deactivate", h.deactivatePromotion)

		api.POST("/transactions", h.createTransaction)
		api.GET("/transactions", h.getTransactions)
		api.GET("/transactions/:id", h.getTransaction)
		api.DELETE("/transactions/:id", h.deleteTransaction)
		api.GET("/transactions/user/:userId", h.getTransactionsByUser)
		api.GET("/transactions/range", h.getTransactionsByRange)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// renderError maps the error taxonomy to HTTP status with a fixed reason
// string per endpoint. Internal detail never reaches the client on 500.
func renderError(c *gin.Context, err error, notFoundMsg, badRequestMsg string) {
	switch {
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case apperrors.IsInvalidInput(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": badRequestMsg})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Service not available"})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
