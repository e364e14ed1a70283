package metrics

// ScoreWeights is the weighted blend behind the composite performance score.
// The legacy system carried two variants (a 40/40/20 blend without a payment
// term on the old analytics report, and this one on the vendor performance
// module); the 4-term formula below is the single source of truth here.
type ScoreWeights struct {
	OnTime           float64
	Completion       float64
	DeliveryAccuracy float64
	Payment          float64
}

// Canonical business-defined weights. Overridable per Calculator; do not
// inline these numbers anywhere else.
var DefaultScoreWeights = ScoreWeights{
	OnTime:           0.40,
	Completion:       0.30,
	DeliveryAccuracy: 0.20,
	Payment:          0.10,
}

// TierThresholds maps a score to a categorical tier. Boundaries are
// inclusive: a score exactly at Excellent is "Excellent".
type TierThresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

var DefaultTierThresholds = TierThresholds{
	Excellent: 90,
	Good:      75,
	Fair:      60,
}

const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierFair      = "Fair"
	TierPoor      = "Poor"
)

// PerformanceScore blends the summary's rates into a 0-100 composite:
//
//	score = on_time*W.OnTime + completion*W.Completion
//	      + (100 - min(over_delivery_rate,100))*W.DeliveryAccuracy
//	      + min(payment_progress,100)*W.Payment
//
// Missing inputs contribute 0. The result is clamped to [0,100] and rounded
// to one decimal.
func PerformanceScore(s VendorPerformanceSummary, w ScoreWeights) float64 {
	overDelivery := s.OverDeliveryRate
	if overDelivery > 100 {
		overDelivery = 100
	}
	payment := s.PaymentProgress
	if payment > 100 {
		payment = 100
	}

	score := s.OnTimeRate*w.OnTime +
		s.CompletionRate*w.Completion +
		(100-overDelivery)*w.DeliveryAccuracy +
		payment*w.Payment

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return round1(score)
}

// Tier assigns the categorical tier for a score.
func (t TierThresholds) Tier(score float64) string {
	switch {
	case score >= t.Excellent:
		return TierExcellent
	case score >= t.Good:
		return TierGood
	case score >= t.Fair:
		return TierFair
	default:
		return TierPoor
	}
}
