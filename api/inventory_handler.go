package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/settings"
)

type inventoryHandler struct {
	inventory *inventory.Service
	settings  *settings.Service
	logger    *zap.Logger
}

func newInventoryHandler(inv *inventory.Service, set *settings.Service, logger *zap.Logger) *inventoryHandler {
	return &inventoryHandler{inventory: inv, settings: set, logger: logger}
}

type itemRequest struct {
	Name          string          `json:"name" binding:"required"`
	SKU           string          `json:"sku" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock" binding:"gte=0"`
	MinStockLevel int             `json:"minStockLevel" binding:"gte=0"`
}

func (h *inventoryHandler) handleList(c *gin.Context) {
	items, err := h.inventory.List()
	if err != nil {
		h.logger.Error("failed to list inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *inventoryHandler) handleLowStock(c *gin.Context) {
	items, err := h.inventory.LowStock()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

func (h *inventoryHandler) handleGet(c *gin.Context) {
	item, err := h.inventory.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *inventoryHandler) handleAdd(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	item, err := h.inventory.Add(inventory.Item{
		Name:          req.Name,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		Stock:         req.Stock,
		MinStockLevel: req.MinStockLevel,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *inventoryHandler) handleUpdate(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	item, err := h.inventory.Update(c.Param("id"), inventory.Item{
		Name:          req.Name,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		MinStockLevel: req.MinStockLevel,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *inventoryHandler) handleDelete(c *gin.Context) {
	if err := h.inventory.Delete(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type adjustRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

func (h *inventoryHandler) handleRestock(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	item, err := h.inventory.Restock(c.Param("id"), req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *inventoryHandler) handleRemoveStock(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	item, err := h.inventory.RemoveStock(c.Param("id"), req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *inventoryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, inventory.ErrStockBelowZero):
		c.JSON(http.StatusConflict, gin.H{"error": "cannot reduce stock below zero"})
	case errors.Is(err, inventory.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be greater than zero"})
	default:
		h.logger.Error("inventory operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
