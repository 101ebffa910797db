package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// writeCSV streams a download in the console's export format: a plain
// header line, then rows with every field double-quoted and comma
// joined. Spreadsheet tools consume these; nothing re-imports them, so
// embedded quotes are not escaped beyond the quoting itself.
func writeCSV(c *gin.Context, filename string, headers []string, rows [][]string) {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteString("\n")
	for _, row := range rows {
		quoted := make([]string, len(row))
		for i, v := range row {
			quoted[i] = `"` + v + `"`
		}
		b.WriteString(strings.Join(quoted, ","))
		b.WriteString("\n")
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(b.String()))
}
