package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/expenses"
)

type expensesHandler struct {
	expenses *expenses.Service
	logger   *zap.Logger
}

func newExpensesHandler(e *expenses.Service, logger *zap.Logger) *expensesHandler {
	return &expensesHandler{expenses: e, logger: logger}
}

func (h *expensesHandler) handleCreate(c *gin.Context) {
	var req struct {
		Description string          `json:"description" binding:"required"`
		Category    string          `json:"category" binding:"required"`
		Amount      decimal.Decimal `json:"amount"`
		Date        string          `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	exp, err := h.expenses.Create(req.Description, req.Category, req.Amount, req.Date)
	if err != nil {
		if errors.Is(err, expenses.ErrInvalidAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than zero"})
			return
		}
		h.logger.Error("failed to log expense", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log expense"})
		return
	}

	c.JSON(http.StatusCreated, exp)
}

func (h *expensesHandler) handleList(c *gin.Context) {
	list, err := h.expenses.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	total := decimal.Zero
	for _, e := range list {
		total = total.Add(e.Amount)
	}
	c.JSON(http.StatusOK, gin.H{"expenses": list, "total": total})
}

// handleInitiateDelete issues the one-time code. The code travels over
// the notification feed, never in this response.
func (h *expensesHandler) handleInitiateDelete(c *gin.Context) {
	if err := h.expenses.InitiateDelete(c.Param("id")); err != nil {
		if errors.Is(err, expenses.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
			return
		}
		h.logger.Error("failed to initiate expense delete", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate delete"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "verification code sent"})
}

func (h *expensesHandler) handleConfirmDelete(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required,len=4"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	claims := principal(c)
	err := h.expenses.ConfirmDelete(c.Param("id"), req.Code, claims.Email)
	if err != nil {
		switch {
		case errors.Is(err, expenses.ErrInvalidOTP):
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid or expired verification code"})
		case errors.Is(err, expenses.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		default:
			h.logger.Error("failed to delete expense", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete expense"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *expensesHandler) handleDeleteLogs(c *gin.Context) {
	logs, err := h.expenses.DeleteLogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
