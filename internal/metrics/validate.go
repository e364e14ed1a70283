package metrics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Alert severities.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Alert types.
const (
	AlertLowConversion   = "low_conversion"
	AlertHighPending     = "high_pending"
	AlertInactiveVendor  = "inactive_vendor"
	AlertSuspiciousValue = "suspicious_value"
	AlertOverInvoiced    = "over_invoiced"
)

type Alert struct {
	Type     string  `json:"type"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Value    float64 `json:"value"`
}

// Thresholds holds the business limits behind validation and alerting.
// Values mirror the legacy configuration; override per installation, not
// per call site.
type Thresholds struct {
	// FairConversion is the floor below which conversion draws a warning.
	FairConversion float64
	// HighPendingUSD flags vendors with too much not-yet-invoiced value.
	HighPendingUSD float64
	// InactiveDays flags vendors with no orders for this long.
	InactiveDays int
	// MaxReasonableUSD guards against currency-unit mistakes upstream.
	MaxReasonableUSD float64
	// OverInvoiceFactor flags datasets where invoiced exceeds ordered by
	// this multiple.
	OverInvoiceFactor float64
}

var DefaultThresholds = Thresholds{
	FairConversion:    80,
	HighPendingUSD:    100_000,
	InactiveDays:      90,
	MaxReasonableUSD:  1_000_000_000,
	OverInvoiceFactor: 1.5,
}

// ValidateSummary sanity-checks one vendor summary, capping out-of-range
// rates and attaching warnings. Suspicious magnitudes are flagged but the
// value is returned unchanged; correcting it is the data source's job.
func ValidateSummary(s VendorPerformanceSummary, t Thresholds) VendorPerformanceSummary {
	if s.TotalOrderValue.GreaterThan(decimal.NewFromFloat(t.MaxReasonableUSD)) {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"total order value %s exceeds reasonable maximum %s; verify currency unit",
			FormatCurrency(s.TotalOrderValue.InexactFloat64(), false),
			FormatCurrency(t.MaxReasonableUSD, false),
		))
	}
	if s.ConversionRate > 100 {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"conversion rate %.1f%% exceeds 100%%, capped", s.ConversionRate))
		s.ConversionRate = 100
	}
	if s.PaymentProgress > 100 {
		s.Warnings = append(s.Warnings, fmt.Sprintf(
			"payment progress %.1f%% exceeds 100%%, capped", s.PaymentProgress))
		s.PaymentProgress = 100
	}
	return s
}

// ValidateDataset runs cross-vendor consistency checks and returns
// dataset-level alerts.
func ValidateDataset(summaries []VendorPerformanceSummary, t Thresholds) []Alert {
	if len(summaries) == 0 {
		return nil
	}
	totalOrder := decimal.Zero
	totalInvoiced := decimal.Zero
	for _, s := range summaries {
		totalOrder = totalOrder.Add(s.TotalOrderValue)
		totalInvoiced = totalInvoiced.Add(s.TotalInvoicedValue)
	}

	var alerts []Alert
	if totalOrder.GreaterThan(decimal.NewFromFloat(t.MaxReasonableUSD)) {
		alerts = append(alerts, Alert{
			Type:     AlertSuspiciousValue,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("dataset order value %s exceeds reasonable maximum %s; verify currency unit",
				FormatCurrency(totalOrder.InexactFloat64(), true),
				FormatCurrency(t.MaxReasonableUSD, true)),
			Value: totalOrder.InexactFloat64(),
		})
	}
	limit := totalOrder.Mul(decimal.NewFromFloat(t.OverInvoiceFactor))
	if totalOrder.IsPositive() && totalInvoiced.GreaterThan(limit) {
		alerts = append(alerts, Alert{
			Type:     AlertOverInvoiced,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("invoiced value %s exceeds %.0f%% of order value %s; check for duplicate invoices",
				FormatCurrency(totalInvoiced.InexactFloat64(), true),
				t.OverInvoiceFactor*100,
				FormatCurrency(totalOrder.InexactFloat64(), true)),
			Value: totalInvoiced.InexactFloat64(),
		})
	}
	return alerts
}

// IdentifyAlerts evaluates the per-vendor alert rules against one summary.
// now anchors the inactivity check and should be the caller's business date.
func IdentifyAlerts(s VendorPerformanceSummary, t Thresholds, now time.Time) []Alert {
	var alerts []Alert

	if s.ConversionRate < t.FairConversion {
		alerts = append(alerts, Alert{
			Type:     AlertLowConversion,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%s conversion rate %.1f%% is below the %.0f%% threshold",
				s.VendorName, s.ConversionRate, t.FairConversion),
			Value: s.ConversionRate,
		})
	}

	pending := s.OutstandingValue.InexactFloat64()
	if pending > t.HighPendingUSD {
		alerts = append(alerts, Alert{
			Type:     AlertHighPending,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("%s has %s pending delivery, above the %s threshold",
				s.VendorName,
				FormatCurrency(pending, true),
				FormatCurrency(t.HighPendingUSD, true)),
			Value: pending,
		})
	}

	if !s.LastPODate.IsZero() {
		idle := int(now.UTC().Sub(s.LastPODate.UTC()).Hours() / 24)
		if idle >= t.InactiveDays {
			alerts = append(alerts, Alert{
				Type:     AlertInactiveVendor,
				Severity: SeverityInfo,
				Message: fmt.Sprintf("%s has had no orders in %d days",
					s.VendorName, idle),
				Value: float64(idle),
			})
		}
	}
	return alerts
}
