package api

import (
	"net/http"
	"time"

	"retail-backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

// createTransaction runs the point-of-sale workflow
func (h *Handler) createTransaction(c *gin.Context) {
	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction data"})
		return
	}

	tx, loyalty, err := h.transactions.CreateTransaction(c.Request.Context(), &req)
	if err != nil {
		renderError(c, err, "Entity not found", "Insufficient stock or invalid data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction": tx,
		"loyalty":     loyalty,
	})
}

// getTransaction handles get transaction by ID
func (h *Handler) getTransaction(c *gin.Context) {
	tx, err := h.transactions.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		renderError(c, err, "Transaction not found", "Invalid transaction id")
		return
	}
	c.JSON(http.StatusOK, tx)
}

// getTransactions lists all transactions
func (h *Handler) getTransactions(c *gin.Context) {
	txs, err := h.transactions.GetTransactions(c.Request.Context())
	if err != nil {
		renderError(c, err, "Transaction not found", "Invalid transaction data")
		return
	}
	c.JSON(http.StatusOK, txs)
}

// getTransactionsByUser lists a user's transactions
func (h *Handler) getTransactionsByUser(c *gin.Context) {
	txs, err := h.transactions.GetTransactionsByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		renderError(c, err, "User not found", "Invalid user id")
		return
	}
	c.JSON(http.StatusOK, txs)
}

// getTransactionsByRange lists transactions between ?startDate= and
// ?endDate= (RFC 3339)
func (h *Handler) getTransactionsByRange(c *gin.Context) {
	start, err := time.Parse(time.RFC3339, c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	txs, err := h.transactions.GetTransactionsByDateRange(c.Request.Context(), start, end)
	if err != nil {
		renderError(c, err, "Transaction not found", "Invalid date range")
		return
	}
	c.JSON(http.StatusOK, txs)
}

// deleteTransaction reverses and removes a transaction
func (h *Handler) deleteTransaction(c *gin.Context) {
	if err := h.transactions.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		renderError(c, err, "Transaction not found", "Invalid transaction id")
		return
	}
	c.Status(http.StatusNoContent)
}
