package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/purchases"
)

type purchasesHandler struct {
	purchases *purchases.Service
	logger    *zap.Logger
}

func newPurchasesHandler(p *purchases.Service, logger *zap.Logger) *purchasesHandler {
	return &purchasesHandler{purchases: p, logger: logger}
}

func (h *purchasesHandler) handleCreate(c *gin.Context) {
	var req struct {
		ItemID   string          `json:"itemId" binding:"required"`
		Supplier string          `json:"supplier" binding:"required"`
		Quantity int             `json:"quantity" binding:"required,gt=0"`
		UnitCost decimal.Decimal `json:"unitCost"`
		Date     string          `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	record, err := h.purchases.Create(purchases.CreateRequest{
		ItemID:   req.ItemID,
		Supplier: req.Supplier,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
		Date:     req.Date,
	})
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		case errors.Is(err, purchases.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to record purchase", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record purchase"})
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *purchasesHandler) handleList(c *gin.Context) {
	records, err := h.purchases.List()
	if err != nil {
		h.logger.Error("failed to list purchases", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.TotalCost)
	}
	c.JSON(http.StatusOK, gin.H{
		"results":          records,
		"totalProcurement": total,
	})
}

func (h *purchasesHandler) handleExportCSV(c *gin.Context) {
	records, err := h.purchases.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.ItemName, r.SKU, r.Supplier,
			strconv.Itoa(r.Quantity),
			r.UnitCost.StringFixed(2), r.TotalCost.StringFixed(2), r.Date,
		})
	}
	writeCSV(c, "nashwa_procurement_history.csv",
		[]string{"Purchase ID", "Item", "SKU", "Supplier", "Quantity", "Unit Cost", "Total Cost", "Date"}, rows)
}
