package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/customers"
)

type customersHandler struct {
	customers *customers.Service
	logger    *zap.Logger
}

func newCustomersHandler(cs *customers.Service, logger *zap.Logger) *customersHandler {
	return &customersHandler{customers: cs, logger: logger}
}

func (h *customersHandler) handleCreate(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	cust, err := h.customers.Create(req.Name, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, customers.ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer name is required"})
			return
		}
		h.logger.Error("failed to create customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, cust)
}

func (h *customersHandler) handleList(c *gin.Context) {
	list, err := h.customers.List()
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": list, "count": len(list)})
}

// handleDelete removes a customer; the acting principal's email lands in
// the audit log.
func (h *customersHandler) handleDelete(c *gin.Context) {
	claims := principal(c)
	if err := h.customers.Delete(c.Param("id"), claims.Email); err != nil {
		if errors.Is(err, customers.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "customer not found"})
			return
		}
		h.logger.Error("failed to delete customer", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete customer"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *customersHandler) handleDeleteLogs(c *gin.Context) {
	logs, err := h.customers.DeleteLogs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

func (h *customersHandler) handleExportCSV(c *gin.Context) {
	list, err := h.customers.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	rows := make([][]string, 0, len(list))
	for _, cust := range list {
		rows = append(rows, []string{
			cust.ID, cust.Name, cust.Email, cust.Phone,
			cust.Spent.StringFixed(2), strconv.Itoa(cust.Visits),
			cust.LastVisit, cust.JoinDate,
		})
	}
	writeCSV(c, "nashwa_customers.csv",
		[]string{"id", "name", "email", "phone", "spent", "visits", "lastVisit", "joinDate"}, rows)
}
