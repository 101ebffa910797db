package api

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/sales"
	"github.com/nobih83-prog/Inventory-menegement/internal/settings"
)

// Printable fragments are generated on demand and never persisted.

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head><title>Receipt {{.ID}}</title>
<style>
body { font-family: monospace; width: 58mm; margin: 0 auto; padding: 4mm; }
h1 { font-size: 12pt; text-align: center; }
table { width: 100%; font-size: 8pt; border-collapse: collapse; }
td { padding: 1mm 0; }
.right { text-align: right; }
.total { font-weight: bold; border-top: 1px dashed #000; }
.meta { font-size: 7pt; text-align: center; color: #444; margin-top: 3mm; }
</style>
</head>
<body>
<h1>Nashwa</h1>
<table>
{{range .Items}}<tr><td>{{.Quantity}} × {{.ProductID}}</td><td class="right">{{.LineTotal}}</td></tr>
{{end}}<tr class="total"><td>Total ({{.PaymentMethod}})</td><td class="right">{{.Symbol}}{{.Total}}</td></tr>
</table>
<div class="meta">{{.ID}} · {{.CreatedAt}} · {{.Status}}</div>
</body>
</html>
`))

var labelTmpl = template.Must(template.New("label").Parse(`<!DOCTYPE html>
<html>
<head><title>Label {{.SKU}}</title>
<style>
body { font-family: sans-serif; width: 58mm; height: 40mm; margin: 0; padding: 2mm; text-align: center; }
.name { font-size: 10pt; font-weight: 800; }
.price { font-size: 14pt; font-weight: 900; }
.sku { font-size: 7pt; color: #666; }
</style>
</head>
<body>
<div class="name">{{.Name}}</div>
<div class="price">{{.Symbol}}{{.Price}}</div>
<div class="sku">{{.SKU}}</div>
</body>
</html>
`))

func renderReceipt(record *sales.Record, symbol string) (string, error) {
	type line struct {
		ProductID string
		Quantity  int
		LineTotal string
	}
	data := struct {
		ID            string
		CreatedAt     string
		Status        string
		PaymentMethod string
		Symbol        string
		Total         string
		Items         []line
	}{
		ID:            record.ID,
		CreatedAt:     record.CreatedAt,
		Status:        record.Status,
		PaymentMethod: record.PaymentMethod,
		Symbol:        symbol,
		Total:         record.TotalAmount.StringFixed(2),
	}
	for _, l := range record.Items {
		data.Items = append(data.Items, line{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			LineTotal: l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// handleLabel renders a printable shelf label for an inventory item.
func (h *inventoryHandler) handleLabel(c *gin.Context) {
	item, err := h.inventory.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	currency, err := h.settings.Currency()
	if err != nil {
		currency = settings.DefaultCurrency
	}

	var buf bytes.Buffer
	err = labelTmpl.Execute(&buf, struct {
		Name, SKU, Price, Symbol string
	}{
		Name:   item.Name,
		SKU:    item.SKU,
		Price:  item.Price.StringFixed(2),
		Symbol: settings.Symbol(currency),
	})
	if err != nil {
		h.logger.Error("failed to render label", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render label"})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, "%s", buf.String())
}
