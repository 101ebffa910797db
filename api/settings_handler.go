package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/settings"
)

type settingsHandler struct {
	settings *settings.Service
	logger   *zap.Logger
}

func newSettingsHandler(s *settings.Service, logger *zap.Logger) *settingsHandler {
	return &settingsHandler{settings: s, logger: logger}
}

func (h *settingsHandler) handleGetCurrency(c *gin.Context) {
	code, err := h.settings.Currency()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": code, "symbol": settings.Symbol(code)})
}

func (h *settingsHandler) handleSetCurrency(c *gin.Context) {
	var req struct {
		Currency string `json:"currency" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	if err := h.settings.SetCurrency(req.Currency); err != nil {
		if errors.Is(err, settings.ErrUnknownCurrency) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown currency"})
			return
		}
		h.logger.Error("failed to set currency", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"currency": req.Currency, "symbol": settings.Symbol(req.Currency)})
}
