package metrics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func orderLine(po string, amount, invoiced float64, status string) models.OrderLine {
	return models.OrderLine{
		PONumber:          po,
		VendorName:        "Acme",
		PODate:            day(2025, time.January, 1),
		TotalAmountUSD:    decimal.NewFromFloat(amount),
		InvoicedAmountUSD: decimal.NewFromFloat(invoiced),
		Status:            status,
		OverDelivered:     "N",
	}
}

func TestVendorSummary_EndToEnd(t *testing.T) {
	po1 := orderLine("PO1", 1000, 1000, models.StatusCompleted)
	po1.ETD = dayPtr(2025, time.January, 1)
	po1.ETA = dayPtr(2025, time.January, 1)

	po2 := orderLine("PO2", 2000, 1000, models.StatusCompleted)
	po2.ETD = dayPtr(2025, time.January, 1)
	po2.ETA = dayPtr(2025, time.January, 5)

	po3 := orderLine("PO3", 500, 0, models.StatusPending)

	s := NewCalculator().VendorSummary([]models.OrderLine{po1, po2, po3})

	if s.TotalPOs != 3 {
		t.Fatalf("total_pos=%d want=3", s.TotalPOs)
	}
	if s.CompletedPOs != 2 {
		t.Fatalf("completed_pos=%d want=2", s.CompletedPOs)
	}
	if s.CompletionRate != 66.7 {
		t.Fatalf("completion_rate=%v want=66.7", s.CompletionRate)
	}
	if !s.TotalOrderValue.Equal(decimal.NewFromInt(3500)) {
		t.Fatalf("total_order_value=%s want=3500", s.TotalOrderValue)
	}
	if !s.TotalInvoicedValue.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("total_invoiced_value=%s want=2000", s.TotalInvoicedValue)
	}
	if s.ConversionRate != 57.1 {
		t.Fatalf("conversion_rate=%v want=57.1", s.ConversionRate)
	}
	if !s.OutstandingValue.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("outstanding_value=%s want=1500", s.OutstandingValue)
	}
}

func TestVendorSummary_OnTimeUsesEtaNotBeforeEtd(t *testing.T) {
	onTime := orderLine("PO1", 100, 100, models.StatusCompleted)
	onTime.ETD = dayPtr(2025, time.March, 1)
	onTime.ETA = dayPtr(2025, time.March, 10)

	late := orderLine("PO2", 100, 100, models.StatusCompleted)
	late.ETD = dayPtr(2025, time.March, 10)
	late.ETA = dayPtr(2025, time.March, 1)

	s := NewCalculator().VendorSummary([]models.OrderLine{onTime, late})
	if s.OnTimeRate != 50 {
		t.Fatalf("on_time_rate=%v want=50", s.OnTimeRate)
	}
	if s.LateDeliveryRate != 50 {
		t.Fatalf("late_delivery_rate=%v want=50", s.LateDeliveryRate)
	}
	// 9 days one way, -9 the other.
	if s.AvgLeadTimeDays != 0 {
		t.Fatalf("avg_lead_time_days=%v want=0", s.AvgLeadTimeDays)
	}
}

func TestVendorSummary_OverDelivery(t *testing.T) {
	over := orderLine("PO1", 100, 100, models.StatusCompleted)
	over.ETD = dayPtr(2025, time.May, 1)
	over.ETA = dayPtr(2025, time.May, 1)
	over.OverDelivered = "Y"
	over.StandardQuantity = decimal.NewFromInt(100)
	over.StandardArrivedQuantity = decimal.NewFromInt(120)

	normal := orderLine("PO2", 100, 100, models.StatusCompleted)
	normal.ETD = dayPtr(2025, time.May, 1)
	normal.ETA = dayPtr(2025, time.May, 1)

	s := NewCalculator().VendorSummary([]models.OrderLine{over, normal})
	if s.OverDeliveryPOs != 1 {
		t.Fatalf("over_delivery_pos=%d want=1", s.OverDeliveryPOs)
	}
	if s.OverDeliveryRate != 50 {
		t.Fatalf("over_delivery_rate=%v want=50", s.OverDeliveryRate)
	}
	if s.AvgOverDeliveryPercent != 20 {
		t.Fatalf("avg_over_delivery_percent=%v want=20", s.AvgOverDeliveryPercent)
	}
}

func TestVendorSummary_ZeroStandardQuantitySkipped(t *testing.T) {
	over := orderLine("PO1", 100, 0, models.StatusCompleted)
	over.OverDelivered = "Y"
	// Zero standard quantity cannot produce an over-delivery percent.
	s := NewCalculator().VendorSummary([]models.OrderLine{over})
	if s.AvgOverDeliveryPercent != 0 {
		t.Fatalf("avg_over_delivery_percent=%v want=0", s.AvgOverDeliveryPercent)
	}
	if s.OverDeliveryPOs != 1 {
		t.Fatalf("over_delivery_pos=%d want=1", s.OverDeliveryPOs)
	}
}

func TestVendorSummary_PaymentProgressPerLine(t *testing.T) {
	a := orderLine("PO1", 100, 50, models.StatusInProcess)  // 50%
	b := orderLine("PO2", 200, 200, models.StatusCompleted) // 100%
	c := orderLine("PO3", 0, 0, models.StatusPending)       // skipped

	s := NewCalculator().VendorSummary([]models.OrderLine{a, b, c})
	if s.PaymentProgress != 75 {
		t.Fatalf("payment_progress=%v want=75", s.PaymentProgress)
	}
}

func TestVendorSummaries_GroupsAndSorts(t *testing.T) {
	small := orderLine("PO1", 100, 100, models.StatusCompleted)
	small.VendorName = "Small Co"
	big := orderLine("PO2", 9000, 9000, models.StatusCompleted)
	big.VendorName = "Big Co"

	out := NewCalculator().VendorSummaries([]models.OrderLine{small, big})
	if len(out) != 2 {
		t.Fatalf("summaries=%d want=2", len(out))
	}
	if out[0].VendorName != "Big Co" {
		t.Fatalf("first=%s want=Big Co", out[0].VendorName)
	}
}

func TestVendorSummary_EmptyInput(t *testing.T) {
	s := NewCalculator().VendorSummary(nil)
	if s.TotalPOs != 0 || s.ConversionRate != 0 {
		t.Fatalf("empty summary not zeroed: %+v", s)
	}
	if s.PerformanceTier != TierPoor {
		t.Fatalf("tier=%s want=%s", s.PerformanceTier, TierPoor)
	}
}
