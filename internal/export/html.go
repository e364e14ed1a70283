package export

import (
	"bytes"
	"html/template"
	"time"

	"inboundlogistics/internal/metrics"
	"inboundlogistics/internal/models"
)

var performanceTmpl = template.Must(template.New("performance").Funcs(template.FuncMap{
	"money": func(v float64) string { return metrics.FormatCurrency(v, true) },
	"pct":   func(v float64) string { return metrics.FormatPercentage(v, 1) },
}).Parse(`<html><body>
<h2>Vendor Performance Report</h2>
<p>Window: {{.Start.Format "2006-01-02"}} to {{.End.Format "2006-01-02"}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Vendor</th><th>POs</th><th>Completion</th><th>On-Time</th><th>Conversion</th><th>Score</th><th>Tier</th><th>Order Value</th></tr>
{{range .Summaries}}<tr>
<td>{{.VendorName}}</td><td>{{.TotalPOs}}</td><td>{{pct .CompletionRate}}</td>
<td>{{pct .OnTimeRate}}</td><td>{{pct .ConversionRate}}</td>
<td>{{.PerformanceScore}}</td><td>{{.PerformanceTier}}</td>
<td>{{money .TotalOrderValueF}}</td>
</tr>{{end}}
</table>
{{if .Alerts}}<h3>Alerts</h3><ul>
{{range .Alerts}}<li>[{{.Severity}}] {{.Message}}</li>{{end}}
</ul>{{end}}
</body></html>`))

var pendingReceiptTmpl = template.Must(template.New("pending").Parse(`<html><body>
<h2>Pending Receipt Report</h2>
<p>Arrivals waiting for stock-in as of {{.AsOf.Format "2006-01-02"}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Arrival Note</th><th>PO</th><th>Vendor</th><th>Product</th><th>Days Since Arrival</th><th>Pending Qty</th></tr>
{{range .Arrivals}}<tr>
<td>{{.ArrivalNoteNumber}}</td><td>{{.PONumber}}</td><td>{{.VendorName}}</td>
<td>{{.ProductName}}</td><td>{{.DaysSinceArrival}}</td><td>{{.PendingStockinQuantity}}</td>
</tr>{{end}}
</table>
</body></html>`))

type performanceRow struct {
	metrics.VendorPerformanceSummary
	TotalOrderValueF float64
}

// PerformanceHTML renders the vendor-performance email body.
func PerformanceHTML(summaries []metrics.VendorPerformanceSummary, alerts []metrics.Alert, start, end time.Time) (string, error) {
	rows := make([]performanceRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, performanceRow{
			VendorPerformanceSummary: s,
			TotalOrderValueF:         s.TotalOrderValue.InexactFloat64(),
		})
	}
	var buf bytes.Buffer
	err := performanceTmpl.Execute(&buf, map[string]any{
		"Summaries": rows,
		"Alerts":    alerts,
		"Start":     start,
		"End":       end,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PendingReceiptHTML renders the pending-receipt email body.
func PendingReceiptHTML(arrivals []models.ArrivalNote, asOf time.Time) (string, error) {
	var buf bytes.Buffer
	err := pendingReceiptTmpl.Execute(&buf, map[string]any{
		"Arrivals": arrivals,
		"AsOf":     asOf,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
