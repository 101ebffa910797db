// Package seed loads the demo dataset: the cafe catalog, a few days of
// sales, the starter customer directory, and demo logins.
package seed

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/auth"
	"github.com/nobih83-prog/Inventory-menegement/internal/customers"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/notify"
	"github.com/nobih83-prog/Inventory-menegement/internal/sales"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var demoItems = []inventory.Item{
	{ID: "1", Name: "Premium Coffee Beans (1kg)", Category: "Coffee", Price: price("25.00"), Stock: 15, MinStockLevel: 20, SKU: "CB-PR-01", LastRestocked: "May 12, 2024"},
	{ID: "2", Name: "Milk 1L (Whole)", Category: "Dairy", Price: price("1.50"), Stock: 120, MinStockLevel: 40, SKU: "DA-MK-02", LastRestocked: "May 14, 2024"},
	{ID: "3", Name: "Croissant (Plain)", Category: "Bakery", Price: price("3.50"), Stock: 5, MinStockLevel: 15, SKU: "BK-CR-01", LastRestocked: "May 15, 2024"},
	{ID: "4", Name: "Espresso Machine Cleaner", Category: "Maintenance", Price: price("18.00"), Stock: 12, MinStockLevel: 5, SKU: "MT-EM-01", LastRestocked: "Apr 28, 2024"},
	{ID: "5", Name: "Paper Cups (Large)", Category: "Supplies", Price: price("0.15"), Stock: 500, MinStockLevel: 100, SKU: "SP-PC-03", LastRestocked: "May 01, 2024"},
}

var demoSales = []sales.Record{
	{ID: "ORD-101", CustomerName: "Walk-in Customer", PaymentMethod: sales.PaymentCash, TotalAmount: price("45.20"), CreatedAt: "May 15, 2024 14:22", Status: sales.StatusSuccess, Items: []sales.Line{}},
	{ID: "ORD-102", CustomerName: "John Smith", PaymentMethod: sales.PaymentCard, TotalAmount: price("12.00"), CreatedAt: "May 15, 2024 13:05", Status: sales.StatusSuccess, Items: []sales.Line{}},
	{ID: "ORD-103", CustomerName: "Maria Garcia", PaymentMethod: sales.PaymentTransfer, TotalAmount: price("350.00"), CreatedAt: "May 15, 2024 11:45", Status: sales.StatusSuccess, Items: []sales.Line{}},
}

var demoCustomers = []customers.Customer{
	{ID: "1", Name: "John Smith", Email: "john@example.com", Phone: "+1 234 567 890", Spent: price("1250.40"), Visits: 12, LastVisit: "May 12, 2024", JoinDate: "Jan 10, 2023"},
	{ID: "2", Name: "Maria Garcia", Email: "maria.g@gmail.com", Phone: "+1 987 654 321", Spent: price("840.00"), Visits: 8, LastVisit: "May 15, 2024", JoinDate: "Feb 15, 2023"},
}

type demoUser struct {
	email, password, business string
	role                      auth.Role
}

var demoUsers = []demoUser{
	{"adil@nashwa.com", "owner123", "Nashwa Cafe & Bistro", auth.RoleOwner},
	{"kyle@nashwa.com", "staff123", "Nashwa Cafe & Bistro", auth.RoleStaff},
	{"jane.doe@example.com", "portal123", "Nashwa Cafe & Bistro", auth.RoleCustomer},
	{"root@nashwa.com", "super123", "Nashwa Platform", auth.RoleSuperAdmin},
}

// Run writes the demo dataset. Existing data is replaced wholesale; the
// command exists to reset a development environment.
func Run(st store.Store, authSvc *auth.Service, logger *zap.Logger) error {
	err := st.Update(func(tx store.Tx) error {
		if err := inventory.Save(tx, demoItems); err != nil {
			return err
		}
		if err := sales.Save(tx, demoSales); err != nil {
			return err
		}
		if err := tx.Put(store.KeyCustomers, demoCustomers); err != nil {
			return err
		}
		// The one-time seeded alert.
		return tx.Put(store.KeyNotifications, []notify.Notification{{
			ID:       "1",
			Title:    "Low Stock Alert",
			Message:  "Organic Coffee Beans are below minimum level (5 left).",
			Type:     "warning",
			Path:     "/inventory",
			TargetID: "1",
		}})
	})
	if err != nil {
		return fmt.Errorf("seeding ledgers: %w", err)
	}

	for _, u := range demoUsers {
		if _, err := authSvc.Signup(u.email, u.password, u.business, u.role); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.email, err)
		}
	}

	logger.Info("demo data seeded",
		zap.Int("items", len(demoItems)),
		zap.Int("sales", len(demoSales)),
		zap.Int("users", len(demoUsers)),
	)
	return nil
}
