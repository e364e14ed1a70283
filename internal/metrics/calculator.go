package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
)

// VendorPerformanceSummary is the per-vendor result for one analysis window.
// It is a pure value: computed fresh per call, never persisted, immutable
// once returned. Rates are 0-100 percentages rounded to one decimal; money
// values stay decimal.
type VendorPerformanceSummary struct {
	VendorCode         string `json:"vendor_code"`
	VendorName         string `json:"vendor_name"`
	VendorType         string `json:"vendor_type"`
	VendorLocationType string `json:"vendor_location_type"`

	TotalPOs        int `json:"total_pos"`
	CompletedPOs    int `json:"completed_pos"`
	OverDeliveryPOs int `json:"over_delivery_pos"`
	TotalPOLines    int `json:"total_po_lines"`

	OnTimeRate       float64 `json:"on_time_rate"`
	CompletionRate   float64 `json:"completion_rate"`
	OverDeliveryRate float64 `json:"over_delivery_rate"`
	LateDeliveryRate float64 `json:"late_delivery_rate"`
	ConversionRate   float64 `json:"conversion_rate"`
	PaymentProgress  float64 `json:"payment_progress"`

	AvgOverDeliveryPercent float64 `json:"avg_over_delivery_percent"`
	AvgLeadTimeDays        float64 `json:"avg_lead_time_days"`

	TotalOrderValue    decimal.Decimal `json:"total_order_value"`
	TotalInvoicedValue decimal.Decimal `json:"total_invoiced_value"`
	OutstandingValue   decimal.Decimal `json:"outstanding_value"`

	FirstPODate time.Time `json:"first_po_date"`
	LastPODate  time.Time `json:"last_po_date"`

	PerformanceScore float64 `json:"performance_score"`
	PerformanceTier  string  `json:"performance_tier"`

	// Warnings attached by the validator (suspicious magnitudes, capped
	// rates). The values themselves are never auto-corrected.
	Warnings []string `json:"warnings,omitempty"`
}

// Calculator derives vendor summaries from raw order-line snapshots.
// Scoring weights and tier thresholds default to the canonical constants but
// stay overridable per instance.
type Calculator struct {
	Weights ScoreWeights
	Tiers   TierThresholds
}

func NewCalculator() *Calculator {
	return &Calculator{Weights: DefaultScoreWeights, Tiers: DefaultTierThresholds}
}

// VendorSummaries groups lines by vendor and computes the full metric set
// plus the composite score for each group. Vendors are returned sorted
// by total order value, largest first. Empty input yields an empty slice.
func (c *Calculator) VendorSummaries(lines []models.OrderLine) []VendorPerformanceSummary {
	if len(lines) == 0 {
		return nil
	}
	byVendor := map[string][]models.OrderLine{}
	order := []string{}
	for _, l := range lines {
		if _, ok := byVendor[l.VendorName]; !ok {
			order = append(order, l.VendorName)
		}
		byVendor[l.VendorName] = append(byVendor[l.VendorName], l)
	}

	out := make([]VendorPerformanceSummary, 0, len(order))
	for _, name := range order {
		out = append(out, c.summarize(byVendor[name]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalOrderValue.GreaterThan(out[j].TotalOrderValue)
	})
	return out
}

// VendorSummary computes metrics for a single pre-filtered vendor group.
func (c *Calculator) VendorSummary(lines []models.OrderLine) VendorPerformanceSummary {
	if len(lines) == 0 {
		return VendorPerformanceSummary{
			TotalOrderValue:    decimal.Zero,
			TotalInvoicedValue: decimal.Zero,
			OutstandingValue:   decimal.Zero,
			PerformanceTier:    c.tiers().Tier(0),
		}
	}
	return c.summarize(lines)
}

func (c *Calculator) summarize(lines []models.OrderLine) VendorPerformanceSummary {
	first := lines[0]
	s := VendorPerformanceSummary{
		VendorCode:         first.VendorCode,
		VendorName:         first.VendorName,
		VendorType:         first.VendorType,
		VendorLocationType: first.VendorLocationType,
		TotalOrderValue:    decimal.Zero,
		TotalInvoicedValue: decimal.Zero,
		OutstandingValue:   decimal.Zero,
	}

	pos := map[string]struct{}{}
	completedPOs := map[string]struct{}{}
	onTimePOs := map[string]struct{}{}
	latePOs := map[string]struct{}{}
	overPOs := map[string]struct{}{}

	var overDeliveryPctSum float64
	var overDeliveryPctN int
	var leadDaysSum float64
	var leadDaysN int
	var paymentPctSum float64
	var paymentPctN int

	for _, l := range lines {
		s.TotalPOLines++
		pos[l.PONumber] = struct{}{}

		if l.IsCompleted() {
			completedPOs[l.PONumber] = struct{}{}
			if l.ETA != nil && l.ETD != nil {
				// "On time" is operationalized as eta >= etd; the source
				// treats an arrival scheduled at or after departure as
				// meeting plan, and eta < etd as late.
				if !l.ETA.Before(*l.ETD) {
					onTimePOs[l.PONumber] = struct{}{}
				} else {
					latePOs[l.PONumber] = struct{}{}
				}
				leadDaysSum += l.ETA.Sub(*l.ETD).Hours() / 24
				leadDaysN++
			}
		}

		if l.IsOverDelivered() {
			overPOs[l.PONumber] = struct{}{}
			if l.StandardQuantity.IsPositive() {
				over := l.StandardArrivedQuantity.Sub(l.StandardQuantity).
					Div(l.StandardQuantity).Mul(decimal.NewFromInt(100))
				overDeliveryPctSum += over.InexactFloat64()
				overDeliveryPctN++
			}
		}

		if l.TotalAmountUSD.IsPositive() {
			paymentPctSum += l.InvoicedAmountUSD.Div(l.TotalAmountUSD).
				Mul(decimal.NewFromInt(100)).InexactFloat64()
			paymentPctN++
		}

		s.TotalOrderValue = s.TotalOrderValue.Add(l.TotalAmountUSD)
		s.TotalInvoicedValue = s.TotalInvoicedValue.Add(l.InvoicedAmountUSD)

		if s.FirstPODate.IsZero() || l.PODate.Before(s.FirstPODate) {
			s.FirstPODate = l.PODate
		}
		if l.PODate.After(s.LastPODate) {
			s.LastPODate = l.PODate
		}
	}

	s.TotalPOs = len(pos)
	s.CompletedPOs = len(completedPOs)
	s.OverDeliveryPOs = len(overPOs)

	s.CompletionRate = SafePercentage(float64(s.CompletedPOs), float64(s.TotalPOs), 1)
	s.OnTimeRate = SafePercentage(float64(len(onTimePOs)), float64(s.CompletedPOs), 1)
	s.LateDeliveryRate = SafePercentage(float64(len(latePOs)), float64(s.CompletedPOs), 1)
	s.OverDeliveryRate = SafePercentage(float64(s.OverDeliveryPOs), float64(s.CompletedPOs), 1)

	if overDeliveryPctN > 0 {
		s.AvgOverDeliveryPercent = round1(overDeliveryPctSum / float64(overDeliveryPctN))
	}
	if leadDaysN > 0 {
		s.AvgLeadTimeDays = round1(leadDaysSum / float64(leadDaysN))
	}
	if paymentPctN > 0 {
		s.PaymentProgress = round1(paymentPctSum / float64(paymentPctN))
	}

	s.ConversionRate = ConversionRate(
		s.TotalInvoicedValue.InexactFloat64(),
		s.TotalOrderValue.InexactFloat64(),
	)
	outstanding := s.TotalOrderValue.Sub(s.TotalInvoicedValue)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	s.OutstandingValue = outstanding.Round(2)

	s.PerformanceScore = PerformanceScore(s, c.weights())
	s.PerformanceTier = c.tiers().Tier(s.PerformanceScore)
	return s
}

func (c *Calculator) weights() ScoreWeights {
	if c == nil || c.Weights == (ScoreWeights{}) {
		return DefaultScoreWeights
	}
	return c.Weights
}

func (c *Calculator) tiers() TierThresholds {
	if c == nil || c.Tiers == (TierThresholds{}) {
		return DefaultTierThresholds
	}
	return c.Tiers
}
