package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/notify"
)

type notificationsHandler struct {
	center *notify.Center
	logger *zap.Logger
}

func newNotificationsHandler(center *notify.Center, logger *zap.Logger) *notificationsHandler {
	return &notificationsHandler{center: center, logger: logger}
}

func (h *notificationsHandler) handleList(c *gin.Context) {
	list, unread, err := h.center.List()
	if err != nil {
		h.logger.Error("failed to list notifications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list, "unreadCount": unread})
}

func (h *notificationsHandler) handleMarkRead(c *gin.Context) {
	if err := h.center.MarkRead(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *notificationsHandler) handleMarkAllRead(c *gin.Context) {
	if err := h.center.MarkAllRead(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *notificationsHandler) handleClear(c *gin.Context) {
	if err := h.center.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}
