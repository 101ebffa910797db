package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/auth"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/sales"
	"github.com/nobih83-prog/Inventory-menegement/internal/settings"
)

type salesHandler struct {
	sales    *sales.Service
	settings *settings.Service
	auth     *auth.Service
	logger   *zap.Logger
}

func newSalesHandler(s *sales.Service, set *settings.Service, a *auth.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{sales: s, settings: set, auth: a, logger: logger}
}

// handleCommit handles POST /sales: cart in, committed record out.
func (h *salesHandler) handleCommit(c *gin.Context) {
	var req struct {
		Items         []sales.CartLine `json:"items" binding:"required"`
		PaymentMethod string           `json:"paymentMethod" binding:"required"`
		CustomerName  string           `json:"customerName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("failed to bind sale request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	record, err := h.sales.Commit(req.Items, req.PaymentMethod, req.CustomerName)
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrEmptyCart),
			errors.Is(err, sales.ErrInvalidQuantity),
			errors.Is(err, sales.ErrInvalidPayment):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, inventory.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, sales.ErrInsufficientStock):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("failed to commit sale", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit sale"})
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// handleVoid handles POST /sales/:id/void.
func (h *salesHandler) handleVoid(c *gin.Context) {
	record, err := h.sales.Void(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, sales.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
		case errors.Is(err, sales.ErrAlreadyVoided):
			c.JSON(http.StatusConflict, gin.H{"error": "sale already voided"})
		default:
			h.logger.Error("failed to void sale", zap.String("sale_id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to void sale"})
		}
		return
	}
	c.JSON(http.StatusOK, record)
}

// handleSearch handles GET /sales?q=&status=.
func (h *salesHandler) handleSearch(c *gin.Context) {
	results, metadata, err := h.sales.Search(c.Query("q"), c.Query("status"))
	if err != nil {
		if errors.Is(err, sales.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		h.logger.Error("failed to search sales", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search sales"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "metadata": metadata})
}

func (h *salesHandler) handleGet(c *gin.Context) {
	record, err := h.sales.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, sales.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// handleExportCSV streams the ledger as a spreadsheet download.
func (h *salesHandler) handleExportCSV(c *gin.Context) {
	records, _, err := h.sales.Search("", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.CustomerName, r.PaymentMethod,
			r.TotalAmount.StringFixed(2), r.CreatedAt, r.Status,
		})
	}
	writeCSV(c, "nashwa_sales_records.csv",
		[]string{"id", "customer", "method", "amount", "date", "status"}, rows)
}

// handlePortalOrders handles GET /portal/orders: the customer's own
// order history with loyalty points (one point per whole currency unit).
func (h *salesHandler) handlePortalOrders(c *gin.Context) {
	claims := principal(c)
	user, err := h.auth.Get(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown principal"})
		return
	}

	records, _, err := h.sales.Search("", "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	type portalOrder struct {
		ID     string `json:"id"`
		Date   string `json:"date"`
		Amount string `json:"amount"`
		Status string `json:"status"`
		Points int64  `json:"points"`
	}
	orders := make([]portalOrder, 0)
	for _, r := range records {
		// Sales reference customers by display name.
		if r.CustomerName != user.Name && r.CustomerName != user.Email {
			continue
		}
		orders = append(orders, portalOrder{
			ID:     r.ID,
			Date:   r.CreatedAt,
			Amount: r.TotalAmount.StringFixed(2),
			Status: r.Status,
			Points: r.TotalAmount.IntPart(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// handleReceipt renders a printable receipt for the sale.
func (h *salesHandler) handleReceipt(c *gin.Context) {
	record, err := h.sales.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, sales.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	currency, err := h.settings.Currency()
	if err != nil {
		currency = settings.DefaultCurrency
	}

	html, err := renderReceipt(record, settings.Symbol(currency))
	if err != nil {
		h.logger.Error("failed to render receipt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render receipt"})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, "%s", html)
}
