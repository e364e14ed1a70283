package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
)

func periodLine(po, product string, date time.Time, amount, invoiced float64) models.OrderLine {
	return models.OrderLine{
		PONumber:          po,
		VendorName:        "Acme",
		ProductName:       product,
		PODate:            date,
		TotalAmountUSD:    decimal.NewFromFloat(amount),
		InvoicedAmountUSD: decimal.NewFromFloat(invoiced),
	}
}

func TestAggregateByPeriod_Monthly(t *testing.T) {
	lines := []models.OrderLine{
		periodLine("PO1", "widget", day(2025, time.January, 3), 1000, 500),
		periodLine("PO1", "gadget", day(2025, time.January, 20), 500, 500),
		periodLine("PO2", "widget", day(2025, time.February, 1), 2000, 0),
	}
	buckets, err := AggregateByPeriod(lines, PeriodMonthly, DimOrderDate)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("buckets=%d want=2", len(buckets))
	}

	jan := buckets[0]
	if !jan.PeriodStart.Equal(day(2025, time.January, 1)) {
		t.Fatalf("period_start=%v want=2025-01-01", jan.PeriodStart)
	}
	if jan.POCount != 1 {
		t.Fatalf("po_count=%d want=1", jan.POCount)
	}
	if jan.LineCount != 2 {
		t.Fatalf("line_count=%d want=2", jan.LineCount)
	}
	if jan.ProductCount != 2 {
		t.Fatalf("product_count=%d want=2", jan.ProductCount)
	}
	if !jan.OrderValue.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("order_value=%s want=1500", jan.OrderValue)
	}
	if jan.ConversionRate != 66.7 {
		t.Fatalf("conversion_rate=%v want=66.7", jan.ConversionRate)
	}

	feb := buckets[1]
	if !feb.PendingDeliveryValue.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("pending=%s want=2000", feb.PendingDeliveryValue)
	}
}

func TestAggregateByPeriod_QuarterAndYearStarts(t *testing.T) {
	lines := []models.OrderLine{
		periodLine("PO1", "w", day(2025, time.May, 15), 100, 0),
	}
	q, err := AggregateByPeriod(lines, PeriodQuarterly, DimOrderDate)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !q[0].PeriodStart.Equal(day(2025, time.April, 1)) {
		t.Fatalf("quarter start=%v want=2025-04-01", q[0].PeriodStart)
	}
	y, err := AggregateByPeriod(lines, PeriodYearly, DimOrderDate)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if !y[0].PeriodStart.Equal(day(2025, time.January, 1)) {
		t.Fatalf("year start=%v want=2025-01-01", y[0].PeriodStart)
	}
}

func TestAggregateByPeriod_UnknownDimension(t *testing.T) {
	lines := []models.OrderLine{periodLine("PO1", "w", day(2025, time.May, 1), 1, 0)}
	_, err := AggregateByPeriod(lines, PeriodMonthly, DateDimension("invoice_date"))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err=%v want ValidationError", err)
	}
}

func TestAggregateByPeriod_UnknownPeriodType(t *testing.T) {
	lines := []models.OrderLine{periodLine("PO1", "w", day(2025, time.May, 1), 1, 0)}
	_, err := AggregateByPeriod(lines, PeriodType("weekly"), DimOrderDate)
	var ce *CalculationError
	if !errors.As(err, &ce) {
		t.Fatalf("err=%v want CalculationError", err)
	}
}

func TestAggregateByPeriod_MissingAnchorSkipped(t *testing.T) {
	withETA := periodLine("PO1", "w", day(2025, time.May, 1), 100, 0)
	withETA.ETA = dayPtr(2025, time.June, 2)
	noETA := periodLine("PO2", "w", day(2025, time.May, 1), 900, 0)

	buckets, err := AggregateByPeriod([]models.OrderLine{withETA, noETA}, PeriodMonthly, DimETA)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(buckets) != 1 {
		t.Fatalf("buckets=%d want=1", len(buckets))
	}
	if !buckets[0].OrderValue.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("order_value=%s want=100", buckets[0].OrderValue)
	}
}

// Re-aggregating data that is already one-bucket-per-line must reproduce the
// same sums: bucketing is associative over the sum aggregates.
func TestAggregateByPeriod_Idempotent(t *testing.T) {
	lines := []models.OrderLine{
		periodLine("PO1", "w", day(2025, time.January, 3), 300, 100),
		periodLine("PO2", "w", day(2025, time.January, 9), 700, 500),
		periodLine("PO3", "w", day(2025, time.February, 2), 50, 0),
	}
	first, err := AggregateByPeriod(lines, PeriodMonthly, DimOrderDate)
	if err != nil {
		t.Fatalf("err=%v", err)
	}

	// Expand each bucket back into a synthetic line carrying the bucket sums.
	expanded := make([]models.OrderLine, 0, len(first))
	for i, b := range first {
		l := periodLine(first[i].VendorName+b.PeriodStart.Format("2006-01"), "w", b.PeriodStart, 0, 0)
		l.TotalAmountUSD = b.OrderValue
		l.InvoicedAmountUSD = b.InvoicedValue
		expanded = append(expanded, l)
	}
	second, err := AggregateByPeriod(expanded, PeriodMonthly, DimOrderDate)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("buckets=%d want=%d", len(second), len(first))
	}
	for i := range first {
		if !second[i].OrderValue.Equal(first[i].OrderValue) {
			t.Fatalf("bucket %d order_value=%s want=%s", i, second[i].OrderValue, first[i].OrderValue)
		}
		if !second[i].InvoicedValue.Equal(first[i].InvoicedValue) {
			t.Fatalf("bucket %d invoiced_value=%s want=%s", i, second[i].InvoicedValue, first[i].InvoicedValue)
		}
		if second[i].ConversionRate != first[i].ConversionRate {
			t.Fatalf("bucket %d conversion=%v want=%v", i, second[i].ConversionRate, first[i].ConversionRate)
		}
	}
}

func TestGrowthMetrics_ZeroHandling(t *testing.T) {
	if g := GrowthMetrics(0, 0); g.GrowthRate != 0 || g.GrowthAmount != 0 {
		t.Fatalf("growth(0,0)=%+v want rate=0 amount=0", g)
	}
	if g := GrowthMetrics(100, 0); g.GrowthRate != 100 || g.GrowthAmount != 100 {
		t.Fatalf("growth(100,0)=%+v want rate=100 amount=100", g)
	}
	if g := GrowthMetrics(150, 100); g.GrowthRate != 50 {
		t.Fatalf("growth(150,100)=%+v want rate=50", g)
	}
	if g := GrowthMetrics(50, 100); g.GrowthRate != -50 {
		t.Fatalf("growth(50,100)=%+v want rate=-50", g)
	}
}

func TestGrowthSeries(t *testing.T) {
	buckets := []PeriodBucket{
		{PeriodStart: day(2025, time.February, 1), OrderValue: decimal.NewFromInt(200)},
		{PeriodStart: day(2025, time.January, 1), OrderValue: decimal.NewFromInt(100)},
		{PeriodStart: day(2025, time.March, 1), OrderValue: decimal.NewFromInt(100)},
	}
	got := GrowthSeries(buckets)
	if len(got) != 2 {
		t.Fatalf("series=%d want=2", len(got))
	}
	if got[0].GrowthRate != 100 {
		t.Fatalf("jan->feb rate=%v want=100", got[0].GrowthRate)
	}
	if got[1].GrowthRate != -50 {
		t.Fatalf("feb->mar rate=%v want=-50", got[1].GrowthRate)
	}
}
