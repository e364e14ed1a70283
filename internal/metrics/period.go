package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
)

type PeriodType string

const (
	PeriodMonthly   PeriodType = "monthly"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodYearly    PeriodType = "yearly"
)

// DateDimension selects which date anchors a line into a period bucket.
type DateDimension string

const (
	DimOrderDate DateDimension = "po_date"
	DimETD       DateDimension = "etd"
	DimETA       DateDimension = "eta"
)

// PeriodBucket is one (vendor, calendar period) aggregate. PeriodStart is the
// first day of the containing month, quarter, or year in UTC.
type PeriodBucket struct {
	VendorName  string    `json:"vendor_name"`
	PeriodStart time.Time `json:"period_start"`

	POCount      int `json:"po_count"`
	LineCount    int `json:"line_count"`
	ProductCount int `json:"product_count"`

	OrderValue           decimal.Decimal `json:"order_value"`
	InvoicedValue        decimal.Decimal `json:"invoiced_value"`
	PendingDeliveryValue decimal.Decimal `json:"pending_delivery_value"`

	ConversionRate float64 `json:"conversion_rate"`
}

// AggregateByPeriod buckets order lines by (vendor, period start of the
// chosen date dimension) and computes the per-bucket totals and conversion
// rate. Lines whose anchor date is absent are skipped; an unknown dimension
// is a ValidationError and an unknown period type a CalculationError. Buckets
// come back sorted by vendor then period.
func AggregateByPeriod(lines []models.OrderLine, periodType PeriodType, dim DateDimension) ([]PeriodBucket, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	switch dim {
	case DimOrderDate, DimETD, DimETA:
	default:
		return nil, newValidationError("unknown date dimension", map[string]any{"date_column": string(dim)})
	}
	switch periodType {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
	default:
		return nil, newCalculationError("failed to aggregate data by period", nil,
			map[string]any{"period_type": string(periodType)})
	}

	type key struct {
		vendor string
		start  time.Time
	}
	buckets := map[key]*PeriodBucket{}
	pos := map[key]map[string]struct{}{}
	products := map[key]map[string]struct{}{}

	for _, l := range lines {
		anchor, ok := anchorDate(l, dim)
		if !ok {
			continue
		}
		k := key{vendor: l.VendorName, start: periodStart(anchor, periodType)}
		b := buckets[k]
		if b == nil {
			b = &PeriodBucket{
				VendorName:           k.vendor,
				PeriodStart:          k.start,
				OrderValue:           decimal.Zero,
				InvoicedValue:        decimal.Zero,
				PendingDeliveryValue: decimal.Zero,
			}
			buckets[k] = b
			pos[k] = map[string]struct{}{}
			products[k] = map[string]struct{}{}
		}
		b.LineCount++
		pos[k][l.PONumber] = struct{}{}
		if l.ProductName != "" {
			products[k][l.ProductName] = struct{}{}
		}
		b.OrderValue = b.OrderValue.Add(l.TotalAmountUSD)
		b.InvoicedValue = b.InvoicedValue.Add(l.InvoicedAmountUSD)
	}

	out := make([]PeriodBucket, 0, len(buckets))
	for k, b := range buckets {
		b.POCount = len(pos[k])
		b.ProductCount = len(products[k])
		pending := b.OrderValue.Sub(b.InvoicedValue)
		if pending.IsNegative() {
			pending = decimal.Zero
		}
		b.PendingDeliveryValue = pending.Round(2)
		b.ConversionRate = ConversionRate(b.InvoicedValue.InexactFloat64(), b.OrderValue.InexactFloat64())
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].VendorName != out[j].VendorName {
			return out[i].VendorName < out[j].VendorName
		}
		return out[i].PeriodStart.Before(out[j].PeriodStart)
	})
	return out, nil
}

// Growth compares one value against the previous period's.
type Growth struct {
	Current      float64 `json:"current"`
	Previous     float64 `json:"previous"`
	GrowthRate   float64 `json:"growth_rate"`
	GrowthAmount float64 `json:"growth_amount"`
}

// GrowthMetrics computes the period-over-period delta. A zero previous value
// yields 0% growth when current is also zero and 100% otherwise; reporting
// infinite growth off an empty base helps nobody.
func GrowthMetrics(current, previous float64) Growth {
	g := Growth{
		Current:      current,
		Previous:     previous,
		GrowthAmount: round2(current - previous),
	}
	switch {
	case previous == 0 && current == 0:
		g.GrowthRate = 0
	case previous == 0:
		g.GrowthRate = 100
	default:
		g.GrowthRate = round1((current - previous) / previous * 100)
	}
	return g
}

// GrowthSeries maps adjacent buckets (sorted by period) of a single vendor or
// rollup to their order-value growth.
func GrowthSeries(buckets []PeriodBucket) []Growth {
	if len(buckets) < 2 {
		return nil
	}
	sorted := make([]PeriodBucket, len(buckets))
	copy(sorted, buckets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PeriodStart.Before(sorted[j].PeriodStart) })

	out := make([]Growth, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		out = append(out, GrowthMetrics(
			sorted[i].OrderValue.InexactFloat64(),
			sorted[i-1].OrderValue.InexactFloat64(),
		))
	}
	return out
}

func anchorDate(l models.OrderLine, dim DateDimension) (time.Time, bool) {
	switch dim {
	case DimOrderDate:
		if l.PODate.IsZero() {
			return time.Time{}, false
		}
		return l.PODate, true
	case DimETD:
		if l.ETD == nil || l.ETD.IsZero() {
			return time.Time{}, false
		}
		return *l.ETD, true
	case DimETA:
		if l.ETA == nil || l.ETA.IsZero() {
			return time.Time{}, false
		}
		return *l.ETA, true
	}
	return time.Time{}, false
}

func periodStart(t time.Time, p PeriodType) time.Time {
	t = t.UTC()
	switch p {
	case PeriodQuarterly:
		q := (int(t.Month()) - 1) / 3
		return time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, time.UTC)
	case PeriodYearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}
