package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
)

func TestOrderCohorts(t *testing.T) {
	lines := []models.OrderLine{
		orderLine("PO1", 1000, 600, models.StatusInProcess),
		orderLine("PO1", 500, 500, models.StatusCompleted),
		orderLine("PO2", 1000, 0, models.StatusPending),
	}
	out := OrderCohorts(lines)
	if len(out) != 1 {
		t.Fatalf("cohorts=%d want=1", len(out))
	}
	c := out[0]
	if c.TotalPOs != 2 {
		t.Fatalf("total_pos=%d want=2", c.TotalPOs)
	}
	if !c.TotalOrderValue.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("order_value=%s want=2500", c.TotalOrderValue)
	}
	if !c.OutstandingValue.Equal(decimal.NewFromInt(1400)) {
		t.Fatalf("outstanding=%s want=1400", c.OutstandingValue)
	}
	if c.ConversionRate != 44.0 {
		t.Fatalf("conversion=%v want=44.0", c.ConversionRate)
	}
}

func TestInvoiceCohorts(t *testing.T) {
	inv := func(number string, invoiced, paid float64) models.InvoiceLine {
		return models.InvoiceLine{
			InvoiceNumber:        number,
			VendorName:           "Acme",
			InvoiceDate:          time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
			InvoicedAmountUSD:    decimal.NewFromFloat(invoiced),
			PaidAmountUSD:        decimal.NewFromFloat(paid),
			OutstandingAmountUSD: decimal.NewFromFloat(invoiced - paid),
		}
	}
	out := InvoiceCohorts([]models.InvoiceLine{
		inv("INV1", 1000, 800),
		inv("INV1", 500, 400),
		inv("INV2", 500, 0),
	})
	if len(out) != 1 {
		t.Fatalf("cohorts=%d want=1", len(out))
	}
	c := out[0]
	if c.TotalInvoices != 2 {
		t.Fatalf("total_invoices=%d want=2", c.TotalInvoices)
	}
	if !c.TotalInvoicedValue.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("invoiced=%s want=2000", c.TotalInvoicedValue)
	}
	if c.PaymentRate != 60 {
		t.Fatalf("payment_rate=%v want=60", c.PaymentRate)
	}
}
