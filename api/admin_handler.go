package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/auth"
)

type adminHandler struct {
	auth   *auth.Service
	logger *zap.Logger
}

func newAdminHandler(a *auth.Service, logger *zap.Logger) *adminHandler {
	return &adminHandler{auth: a, logger: logger}
}

func (h *adminHandler) handleListUsers(c *gin.Context) {
	users, err := h.auth.List()
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

func (h *adminHandler) handleLoginLogs(c *gin.Context) {
	logs, err := h.auth.LoginLogs()
	if err != nil {
		h.logger.Error("failed to list login logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
