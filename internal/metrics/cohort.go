package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
)

// OrderCohortSummary tracks all purchase orders placed inside a window,
// together with every invoice ever issued against them, regardless of when
// that invoice was dated. Conversion here answers "how much of what we
// ordered in the window has been invoiced to date".
type OrderCohortSummary struct {
	VendorCode string `json:"vendor_code"`
	VendorName string `json:"vendor_name"`
	VendorType string `json:"vendor_type"`

	TotalPOs int `json:"total_pos"`

	TotalOrderValue    decimal.Decimal `json:"total_order_value"`
	TotalInvoicedValue decimal.Decimal `json:"total_invoiced_value"`
	OutstandingValue   decimal.Decimal `json:"outstanding_value"`

	ConversionRate float64 `json:"conversion_rate"`
}

// InvoiceCohortSummary tracks invoice lines dated inside a window, regardless
// of when the underlying order was placed. The two cohorts are different
// populations and must not be conflated.
type InvoiceCohortSummary struct {
	VendorCode string `json:"vendor_code"`
	VendorName string `json:"vendor_name"`
	VendorType string `json:"vendor_type"`

	TotalInvoices int `json:"total_invoices"`

	TotalInvoicedValue decimal.Decimal `json:"total_invoiced_value"`
	TotalPaidValue     decimal.Decimal `json:"total_paid_value"`
	OutstandingValue   decimal.Decimal `json:"outstanding_value"`

	PaymentRate float64 `json:"payment_rate"`
}

// OrderCohorts summarizes order lines (already restricted to the window by
// the data layer) per vendor, sorted by order value descending.
func OrderCohorts(lines []models.OrderLine) []OrderCohortSummary {
	if len(lines) == 0 {
		return nil
	}
	byVendor := map[string]*OrderCohortSummary{}
	pos := map[string]map[string]struct{}{}
	for _, l := range lines {
		s := byVendor[l.VendorName]
		if s == nil {
			s = &OrderCohortSummary{
				VendorCode:         l.VendorCode,
				VendorName:         l.VendorName,
				VendorType:         l.VendorType,
				TotalOrderValue:    decimal.Zero,
				TotalInvoicedValue: decimal.Zero,
				OutstandingValue:   decimal.Zero,
			}
			byVendor[l.VendorName] = s
			pos[l.VendorName] = map[string]struct{}{}
		}
		pos[l.VendorName][l.PONumber] = struct{}{}
		s.TotalOrderValue = s.TotalOrderValue.Add(l.TotalAmountUSD)
		s.TotalInvoicedValue = s.TotalInvoicedValue.Add(l.InvoicedAmountUSD)
	}

	out := make([]OrderCohortSummary, 0, len(byVendor))
	for name, s := range byVendor {
		s.TotalPOs = len(pos[name])
		outstanding := s.TotalOrderValue.Sub(s.TotalInvoicedValue)
		if outstanding.IsNegative() {
			outstanding = decimal.Zero
		}
		s.OutstandingValue = outstanding.Round(2)
		s.ConversionRate = ConversionRate(
			s.TotalInvoicedValue.InexactFloat64(),
			s.TotalOrderValue.InexactFloat64(),
		)
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalOrderValue.GreaterThan(out[j].TotalOrderValue)
	})
	return out
}

// InvoiceCohorts summarizes invoice lines per vendor, sorted by invoiced
// value descending.
func InvoiceCohorts(lines []models.InvoiceLine) []InvoiceCohortSummary {
	if len(lines) == 0 {
		return nil
	}
	byVendor := map[string]*InvoiceCohortSummary{}
	invoices := map[string]map[string]struct{}{}
	for _, l := range lines {
		s := byVendor[l.VendorName]
		if s == nil {
			s = &InvoiceCohortSummary{
				VendorCode:         l.VendorCode,
				VendorName:         l.VendorName,
				VendorType:         l.VendorType,
				TotalInvoicedValue: decimal.Zero,
				TotalPaidValue:     decimal.Zero,
				OutstandingValue:   decimal.Zero,
			}
			byVendor[l.VendorName] = s
			invoices[l.VendorName] = map[string]struct{}{}
		}
		invoices[l.VendorName][l.InvoiceNumber] = struct{}{}
		s.TotalInvoicedValue = s.TotalInvoicedValue.Add(l.InvoicedAmountUSD)
		s.TotalPaidValue = s.TotalPaidValue.Add(l.PaidAmountUSD)
		s.OutstandingValue = s.OutstandingValue.Add(l.OutstandingAmountUSD)
	}

	out := make([]InvoiceCohortSummary, 0, len(byVendor))
	for name, s := range byVendor {
		s.TotalInvoices = len(invoices[name])
		s.PaymentRate = PaymentRate(
			s.TotalPaidValue.InexactFloat64(),
			s.TotalInvoicedValue.InexactFloat64(),
		)
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalInvoicedValue.GreaterThan(out[j].TotalInvoicedValue)
	})
	return out
}
