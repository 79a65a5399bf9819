package api

import (
	"net/http"

	"retail-backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// createProduct adds a product to the catalog
func (h *Handler) createProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
		return
	}

	product, err := h.products.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err, "Product not found", "Invalid product data")
		return
	}

	c.JSON(http.StatusOK, product)
}

// getProduct handles get product by ID
func (h *Handler) getProduct(c *gin.Context) {
	product, err := h.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "Product not found", "Invalid product id")
		return
	}
	c.JSON(http.StatusOK, product)
}

// getProducts lists the catalog
func (h *Handler) getProducts(c *gin.Context) {
	products, err := h.products.GetProducts(c.Request.Context())
	if err != nil {
		renderError(c, err, "Product not found", "Invalid product data")
		return
	}
	c.JSON(http.StatusOK, products)
}

// updateProduct replaces a product's fields
func (h *Handler) updateProduct(c *gin.Context) {
	var req service.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product data"})
		return
	}

	product, err := h.products.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		renderError(c, err, "Product not found", "Invalid product data")
		return
	}

	c.JSON(http.StatusOK, product)
}

// deleteProduct removes a product
func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err, "Product not found", "Invalid product id")
		return
	}
	c.Status(http.StatusNoContent)
}
