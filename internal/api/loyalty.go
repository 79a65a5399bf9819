package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type issueCardBody struct {
	UserID   string `json:"user_id" binding:"required"`
	CardType string `json:"card_type" binding:"required"`
}

// issueCard issues a loyalty card for the user in the body
func (h *Handler) issueCard(c *gin.Context) {
	var req issueCardBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card data"})
		return
	}

	card, err := h.loyalty.IssueCard(c.Request.Context(), req.UserID, req.CardType)
	if err != nil {
		renderError(c, err, "User not found", "Invalid card type")
		return
	}

	c.JSON(http.StatusOK, card)
}

// getCard handles get loyalty card by ID
func (h *Handler) getCard(c *gin.Context) {
	card, err := h.loyalty.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "Loyalty card not found", "Invalid card id")
		return
	}
	c.JSON(http.StatusOK, card)
}

type upgradeCardBody struct {
	CardType string `json:"card_type" binding:"required"`
}

// upgradeCard changes the card type and extends its validity
func (h *Handler) upgradeCard(c *gin.Context) {
	var req upgradeCardBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card type"})
		return
	}

	card, err := h.loyalty.UpgradeCard(c.Request.Context(), c.Param("id"), req.CardType)
	if err != nil {
		renderError(c, err, "Loyalty card not found", "Invalid card type")
		return
	}

	c.JSON(http.StatusOK, card)
}

// deleteCard removes a loyalty card
func (h *Handler) deleteCard(c *gin.Context) {
	if err := h.loyalty.DeleteCard(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err, "Loyalty card not found", "Invalid card id")
		return
	}
	c.Status(http.StatusNoContent)
}

// calculateDiscount returns the card's discount applied to ?amount=
func (h *Handler) calculateDiscount(c *gin.Context) {
	amount, err := strconv.ParseFloat(c.Query("amount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	discount, err := h.loyalty.CalculateDiscount(c.Request.Context(), c.Param("id"), amount)
	if err != nil {
		renderError(c, err, "Loyalty card not found", "Invalid amount")
		return
	}

	c.JSON(http.StatusOK, gin.H{"discount": discount})
}
