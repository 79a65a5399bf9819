package api

import (
	"net/http"

	"retail-backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// createPromotion adds a promotion rule
func (h *Handler) createPromotion(c *gin.Context) {
	var req service.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion data"})
		return
	}

	promotion, err := h.promotions.CreatePromotion(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion type")
		return
	}

	c.JSON(http.StatusOK, promotion)
}

// getPromotion handles get promotion by ID
func (h *Handler) getPromotion(c *gin.Context) {
	promotion, err := h.promotions.GetPromotion(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion id")
		return
	}
	c.JSON(http.StatusOK, promotion)
}

// getPromotions lists all promotions
func (h *Handler) getPromotions(c *gin.Context) {
	promotions, err := h.promotions.GetPromotions(c.Request.Context())
	if err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion data")
		return
	}
	c.JSON(http.StatusOK, promotions)
}

// getActivePromotions lists active promotions
func (h *Handler) getActivePromotions(c *gin.Context) {
	promotions, err := h.promotions.GetActivePromotions(c.Request.Context())
	if err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion data")
		return
	}
	c.JSON(http.StatusOK, promotions)
}

// updatePromotion replaces a promotion's fields
func (h *Handler) updatePromotion(c *gin.Context) {
	var req service.PromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid promotion data"})
		return
	}

	promotion, err := h.promotions.UpdatePromotion(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion type")
		return
	}

	c.JSON(http.StatusOK, promotion)
}

// deletePromotion removes a promotion
func (h *Handler) deletePromotion(c *gin.Context) {
	if err := h.promotions.DeletePromotion(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion id")
		return
	}
	c.Status(http.StatusNoContent)
}

// activatePromotion sets the active flag; repeating is a no-op
func (h *Handler) activatePromotion(c *gin.Context) {
	promotion, err := h.promotions.ActivatePromotion(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion id")
		return
	}
	c.JSON(http.StatusOK, promotion)
}

// deactivatePromotion clears the active flag; repeating is a no-op
func (h *Handler) deactivatePromotion(c *gin.Context) {
	promotion, err := h.promotions.DeactivatePromotion(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "Promotion not found", "Invalid promotion id")
		return
	}
	c.JSON(http.StatusOK, promotion)
}
