package api

import (
	"net/http"

	"retail-backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// createUser handles user registration
func (h *Handler) createUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err, "User not found", "Invalid user data")
		return
	}

	c.JSON(http.StatusOK, user)
}

// getUser handles get user by ID
func (h *Handler) getUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "User not found", "Invalid user id")
		return
	}
	c.JSON(http.StatusOK, user)
}

// deleteUser handles user deletion
func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err, "User not found", "Invalid user id")
		return
	}
	c.Status(http.StatusNoContent)
}

type issueCardRequest struct {
	CardType string `json:"card_type" binding:"required"`
}

// issueCardToUser issues a loyalty card for the user in the path
func (h *Handler) issueCardToUser(c *gin.Context) {
	var req issueCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card type"})
		return
	}

	card, err := h.users.IssueCardToUser(c.Request.Context(), c.Param("id"), req.CardType)
	if err != nil {
		renderError(c, err, "User not found", "Invalid card type")
		return
	}

	c.JSON(http.StatusOK, card)
}

// getUserCards lists the loyalty cards held by the user
func (h *Handler) getUserCards(c *gin.Context) {
	cards, err := h.users.GetUserCards(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "User not found", "Invalid user id")
		return
	}
	c.JSON(http.StatusOK, cards)
}
