package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/expenses"
	"github.com/nobih83-prog/Inventory-menegement/internal/insight"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/sales"
)

type reportsHandler struct {
	sales     *sales.Service
	inventory *inventory.Service
	expenses  *expenses.Service
	advisor   insight.Advisor
	logger    *zap.Logger
}

func newReportsHandler(s *sales.Service, inv *inventory.Service, e *expenses.Service, adv insight.Advisor, logger *zap.Logger) *reportsHandler {
	return &reportsHandler{sales: s, inventory: inv, expenses: e, advisor: adv, logger: logger}
}

type dashboardSummary struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Orders        int             `json:"orders"`
	AvgTicket     decimal.Decimal `json:"avgTicket"`
	ExpenseTotal  decimal.Decimal `json:"expenseTotal"`
	LowStockCount int             `json:"lowStockCount"`
}

func (h *reportsHandler) summarize() (dashboardSummary, error) {
	records, _, err := h.sales.Search("", sales.StatusSuccess)
	if err != nil {
		return dashboardSummary{}, err
	}
	low, err := h.inventory.LowStock()
	if err != nil {
		return dashboardSummary{}, err
	}
	expList, err := h.expenses.List()
	if err != nil {
		return dashboardSummary{}, err
	}

	sum := dashboardSummary{
		Revenue:       decimal.Zero,
		AvgTicket:     decimal.Zero,
		ExpenseTotal:  decimal.Zero,
		Orders:        len(records),
		LowStockCount: len(low),
	}
	for _, r := range records {
		sum.Revenue = sum.Revenue.Add(r.TotalAmount)
	}
	if sum.Orders > 0 {
		sum.AvgTicket = sum.Revenue.Div(decimal.NewFromInt(int64(sum.Orders))).Round(2)
	}
	for _, e := range expList {
		sum.ExpenseTotal = sum.ExpenseTotal.Add(e.Amount)
	}
	return sum, nil
}

// handleDashboard derives the headline figures from the current ledgers.
func (h *reportsHandler) handleDashboard(c *gin.Context) {
	sum, err := h.summarize()
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// handleInsight asks the AI advisor for growth recommendations grounded
// in the current figures. Failures degrade to a text error, no retry.
func (h *reportsHandler) handleInsight(c *gin.Context) {
	sum, err := h.summarize()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	prompt := fmt.Sprintf(
		"Business snapshot: revenue %s across %d orders (avg ticket %s), expenses %s, %d items low on stock. "+
			"Give three short, specific growth recommendations.",
		sum.Revenue.StringFixed(2), sum.Orders, sum.AvgTicket.StringFixed(2),
		sum.ExpenseTotal.StringFixed(2), sum.LowStockCount,
	)

	text, err := h.advisor.Insight(c.Request.Context(), prompt)
	if err != nil {
		h.logger.Warn("insight generation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error generating insights. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insight": text})
}

// handleChat relays a conversation to the AI advisor.
func (h *reportsHandler) handleChat(c *gin.Context) {
	var req struct {
		Messages []insight.Message `json:"messages" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	reply, err := h.advisor.Chat(c.Request.Context(), req.Messages)
	if err != nil {
		h.logger.Warn("chat failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error generating response. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
