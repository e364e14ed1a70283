// Package metrics is the vendor performance calculation core. It consumes
// order and invoice line snapshots loaded by the repository layer and
// produces per-vendor summaries, period buckets, and alerts. Functions here
// are pure: no I/O, no caching, no shared state between calls.
//
// Every ratio with a zero, negative, or NaN denominator resolves to 0 rather
// than an error; genuinely malformed input raises typed errors (errors.go).
package metrics

import (
	"fmt"
	"math"
	"strings"
)

// ConversionRate returns invoiced/order as a percentage rounded to one
// decimal. Zero, negative, or NaN order values yield 0. Negative invoiced
// values are treated as 0 (over- and mis-invoicing is flagged by the
// validator, not reflected here).
func ConversionRate(invoicedValue, orderValue float64) float64 {
	if invoicedValue < 0 || math.IsNaN(invoicedValue) {
		invoicedValue = 0
	}
	if orderValue <= 0 || math.IsNaN(orderValue) {
		return 0
	}
	return round1(invoicedValue / orderValue * 100)
}

// PaymentRate returns paid/invoiced as a percentage, capped at 100 and
// rounded to one decimal. Any non-positive input yields 0.
func PaymentRate(paidValue, invoicedValue float64) float64 {
	if paidValue < 0 || invoicedValue <= 0 || math.IsNaN(paidValue) || math.IsNaN(invoicedValue) {
		return 0
	}
	rate := paidValue / invoicedValue * 100
	if rate > 100 {
		rate = 100
	}
	return round1(rate)
}

// PendingDelivery returns order minus invoiced, floored at zero and rounded
// to two decimals. Over-invoicing never surfaces as a negative pending value.
func PendingDelivery(orderValue, invoicedValue float64) float64 {
	if math.IsNaN(orderValue) {
		orderValue = 0
	}
	if math.IsNaN(invoicedValue) {
		invoicedValue = 0
	}
	pending := orderValue - invoicedValue
	if pending < 0 {
		return 0
	}
	return math.Round(pending*100) / 100
}

// SafeDivide divides numerator by denominator, returning def when the
// denominator is zero or NaN.
func SafeDivide(numerator, denominator, def float64) float64 {
	if denominator == 0 || math.IsNaN(denominator) {
		return def
	}
	return numerator / denominator
}

// SafePercentage returns value/total*100 rounded to the given number of
// decimals, or 0 when total is zero or NaN.
func SafePercentage(value, total float64, decimals int) float64 {
	if total == 0 || math.IsNaN(total) {
		return 0
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(value/total*100*pow) / pow
}

// FormatCurrency renders a USD amount. Compact mode renders $1.2M / $345.0K;
// otherwise whole dollars with thousands separators. NaN renders $0.
func FormatCurrency(value float64, compact bool) string {
	if math.IsNaN(value) {
		return "$0"
	}
	if compact {
		switch {
		case math.Abs(value) >= 1_000_000:
			return fmt.Sprintf("$%.1fM", value/1_000_000)
		case math.Abs(value) >= 1_000:
			return fmt.Sprintf("$%.1fK", value/1_000)
		}
	}
	neg := value < 0
	whole := int64(math.Abs(math.Round(value)))
	s := groupThousands(whole)
	if neg {
		return "-$" + s
	}
	return "$" + s
}

// FormatPercentage renders a rate like 92.5%. NaN renders 0.0%.
func FormatPercentage(value float64, decimals int) string {
	if math.IsNaN(value) {
		value = 0
	}
	return fmt.Sprintf("%.*f%%", decimals, value)
}

// FormatNumber renders a count or quantity with thousands separators.
func FormatNumber(value float64, decimals int) string {
	if math.IsNaN(value) {
		return "0"
	}
	if decimals == 0 {
		neg := ""
		if value < 0 {
			neg = "-"
		}
		return neg + groupThousands(int64(math.Abs(math.Round(value))))
	}
	return fmt.Sprintf("%.*f", decimals, value)
}

func groupThousands(v int64) string {
	s := fmt.Sprintf("%d", v)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
