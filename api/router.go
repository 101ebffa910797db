package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/auth"
	"github.com/nobih83-prog/Inventory-menegement/internal/customers"
	"github.com/nobih83-prog/Inventory-menegement/internal/expenses"
	"github.com/nobih83-prog/Inventory-menegement/internal/insight"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/notify"
	"github.com/nobih83-prog/Inventory-menegement/internal/purchases"
	"github.com/nobih83-prog/Inventory-menegement/internal/sales"
	"github.com/nobih83-prog/Inventory-menegement/internal/settings"
)

// Deps collects every service the routes need.
type Deps struct {
	Logger    *zap.Logger
	Tokens    *auth.TokenIssuer
	Auth      *auth.Service
	Inventory *inventory.Service
	Sales     *sales.Service
	Purchases *purchases.Service
	Customers *customers.Service
	Expenses  *expenses.Service
	Notify    *notify.Center
	Settings  *settings.Service
	Advisor   insight.Advisor
}

// InitRoutes registers every endpoint on the given engine. Role groups
// mirror the console's route guards: back-office pages for staff and up,
// finance pages for managers and owners, the portal for customers, and
// the platform panel for the super admin only.
func InitRoutes(e *gin.Engine, d Deps) {
	authH := newAuthHandler(d.Auth, d.Logger)
	invH := newInventoryHandler(d.Inventory, d.Settings, d.Logger)
	salesH := newSalesHandler(d.Sales, d.Settings, d.Auth, d.Logger)
	purchH := newPurchasesHandler(d.Purchases, d.Logger)
	custH := newCustomersHandler(d.Customers, d.Logger)
	expH := newExpensesHandler(d.Expenses, d.Logger)
	notifH := newNotificationsHandler(d.Notify, d.Logger)
	setH := newSettingsHandler(d.Settings, d.Logger)
	repH := newReportsHandler(d.Sales, d.Inventory, d.Expenses, d.Advisor, d.Logger)
	adminH := newAdminHandler(d.Auth, d.Logger)

	e.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	e.POST("/auth/signup", authH.handleSignup)
	e.POST("/auth/login", authH.handleLogin)
	e.GET("/auth/me", requireAuth(d.Tokens), authH.handleMe)

	// Back office: owner, manager, staff.
	staff := e.Group("/", requireAuth(d.Tokens, auth.RoleOwner, auth.RoleManager, auth.RoleStaff))
	{
		staff.GET("/inventory", invH.handleList)
		staff.POST("/inventory", invH.handleAdd)
		staff.GET("/inventory/low-stock", invH.handleLowStock)
		staff.GET("/inventory/:id", invH.handleGet)
		staff.PUT("/inventory/:id", invH.handleUpdate)
		staff.DELETE("/inventory/:id", invH.handleDelete)
		staff.POST("/inventory/:id/restock", invH.handleRestock)
		staff.POST("/inventory/:id/remove-stock", invH.handleRemoveStock)
		staff.GET("/inventory/:id/label", invH.handleLabel)

		staff.GET("/sales", salesH.handleSearch)
		staff.POST("/sales", salesH.handleCommit)
		staff.GET("/sales/export", salesH.handleExportCSV)
		staff.GET("/sales/:id", salesH.handleGet)
		staff.POST("/sales/:id/void", salesH.handleVoid)
		staff.GET("/sales/:id/receipt", salesH.handleReceipt)

		staff.GET("/customers", custH.handleList)
		staff.POST("/customers", custH.handleCreate)
		staff.DELETE("/customers/:id", custH.handleDelete)
		staff.GET("/customers/logs", custH.handleDeleteLogs)
		staff.GET("/customers/export", custH.handleExportCSV)

		staff.GET("/dashboard", repH.handleDashboard)
		staff.GET("/notifications", notifH.handleList)
		staff.POST("/notifications/:id/read", notifH.handleMarkRead)
		staff.POST("/notifications/read-all", notifH.handleMarkAllRead)
		staff.DELETE("/notifications", notifH.handleClear)
	}

	// Finance and administration: owner, manager.
	mgr := e.Group("/", requireAuth(d.Tokens, auth.RoleOwner, auth.RoleManager))
	{
		mgr.GET("/purchases", purchH.handleList)
		mgr.POST("/purchases", purchH.handleCreate)
		mgr.GET("/purchases/export", purchH.handleExportCSV)

		mgr.GET("/expenses", expH.handleList)
		mgr.POST("/expenses", expH.handleCreate)
		mgr.POST("/expenses/:id/delete", expH.handleInitiateDelete)
		mgr.POST("/expenses/:id/confirm-delete", expH.handleConfirmDelete)
		mgr.GET("/expenses/logs", expH.handleDeleteLogs)

		mgr.GET("/reports/insight", repH.handleInsight)
		mgr.POST("/assistant/chat", repH.handleChat)

		mgr.GET("/settings/currency", setH.handleGetCurrency)
		mgr.PUT("/settings/currency", setH.handleSetCurrency)
	}

	// Customer portal.
	portal := e.Group("/portal", requireAuth(d.Tokens, auth.RoleCustomer))
	{
		portal.GET("/orders", salesH.handlePortalOrders)
	}

	// Platform control.
	admin := e.Group("/platform", requireAuth(d.Tokens, auth.RoleSuperAdmin))
	{
		admin.GET("/users", adminH.handleListUsers)
		admin.GET("/login-logs", adminH.handleLoginLogs)
	}
}
