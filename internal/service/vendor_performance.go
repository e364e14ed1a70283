package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inboundlogistics/internal/cache"
	"inboundlogistics/internal/metrics"
	"inboundlogistics/internal/models"
	"inboundlogistics/internal/repository"
)

// VendorPerformanceService is the read path behind the dashboard. It loads
// line snapshots from the repository, runs the calculation core, validates
// the results, and caches the serialized output per query shape. All
// mutation-free: the same query against the same data yields the same bytes.
type VendorPerformanceService struct {
	Repo       repository.Repository
	Cache      cache.Cache
	Calc       *metrics.Calculator
	Thresholds metrics.Thresholds
	TTL        time.Duration
	Logger     *zap.Logger

	// Now anchors the inactivity alert; overridden in tests.
	Now func() time.Time
}

// PerformanceOverview is the full dashboard payload for one query window.
type PerformanceOverview struct {
	Summaries []metrics.VendorPerformanceSummary `json:"summaries"`
	Alerts    []metrics.Alert                    `json:"alerts"`

	TotalOrderValue    float64 `json:"total_order_value"`
	TotalInvoicedValue float64 `json:"total_invoiced_value"`
	VendorCount        int     `json:"vendor_count"`
}

// Overview computes validated summaries plus dataset and per-vendor alerts
// for the window.
func (s *VendorPerformanceService) Overview(ctx context.Context, q repository.OrderLineQuery) (*PerformanceOverview, error) {
	key := s.cacheKey("overview", q)
	if out, ok := getCached[PerformanceOverview](ctx, s.Cache, key); ok {
		return out, nil
	}

	lines, err := s.Repo.ListOrderLines(ctx, q)
	if err != nil {
		return nil, err
	}

	summaries := s.calc().VendorSummaries(lines)
	t := s.thresholds()
	now := s.now()

	out := &PerformanceOverview{}
	for _, sum := range summaries {
		validated := metrics.ValidateSummary(sum, t)
		out.Summaries = append(out.Summaries, validated)
		out.Alerts = append(out.Alerts, metrics.IdentifyAlerts(validated, t, now)...)
		out.TotalOrderValue += sum.TotalOrderValue.InexactFloat64()
		out.TotalInvoicedValue += sum.TotalInvoicedValue.InexactFloat64()
	}
	out.VendorCount = len(out.Summaries)
	out.Alerts = append(out.Alerts, metrics.ValidateDataset(summaries, t)...)

	s.setCached(ctx, key, out)
	return out, nil
}

// VendorSummary computes the validated summary for one vendor. Returns nil
// when the vendor has no lines in the window.
func (s *VendorPerformanceService) VendorSummary(ctx context.Context, vendor string, q repository.OrderLineQuery) (*metrics.VendorPerformanceSummary, error) {
	q.VendorName = vendor
	lines, err := s.Repo.ListOrderLines(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}
	sum := metrics.ValidateSummary(s.calc().VendorSummary(lines), s.thresholds())
	return &sum, nil
}

// PeriodBuckets aggregates the window by (vendor, period start).
func (s *VendorPerformanceService) PeriodBuckets(ctx context.Context, q repository.OrderLineQuery, periodType metrics.PeriodType, dim metrics.DateDimension) ([]metrics.PeriodBucket, error) {
	key := s.cacheKey(fmt.Sprintf("periods:%s:%s", periodType, dim), q)
	if out, ok := getCached[[]metrics.PeriodBucket](ctx, s.Cache, key); ok {
		return *out, nil
	}

	lines, err := s.Repo.ListOrderLines(ctx, q)
	if err != nil {
		return nil, err
	}
	buckets, err := metrics.AggregateByPeriod(lines, periodType, dim)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, key, &buckets)
	return buckets, nil
}

// GrowthSeries returns period-over-period order-value growth for one vendor,
// or the whole dataset when vendor is empty.
func (s *VendorPerformanceService) GrowthSeries(ctx context.Context, q repository.OrderLineQuery, periodType metrics.PeriodType) ([]metrics.Growth, error) {
	buckets, err := s.PeriodBuckets(ctx, q, periodType, metrics.DimOrderDate)
	if err != nil {
		return nil, err
	}
	if q.VendorName == "" {
		buckets = rollupByPeriod(buckets)
	}
	return metrics.GrowthSeries(buckets), nil
}

// OrderCohorts summarizes POs placed in the window with lifetime invoicing.
func (s *VendorPerformanceService) OrderCohorts(ctx context.Context, q repository.OrderLineQuery) ([]metrics.OrderCohortSummary, error) {
	lines, err := s.Repo.ListOrderCohortLines(ctx, q)
	if err != nil {
		return nil, err
	}
	return metrics.OrderCohorts(lines), nil
}

// InvoiceCohorts summarizes invoices dated in the window.
func (s *VendorPerformanceService) InvoiceCohorts(ctx context.Context, q repository.InvoiceLineQuery) ([]metrics.InvoiceCohortSummary, error) {
	lines, err := s.Repo.ListInvoiceLines(ctx, q)
	if err != nil {
		return nil, err
	}
	return metrics.InvoiceCohorts(lines), nil
}

// Alerts returns just the alert list for the window.
func (s *VendorPerformanceService) Alerts(ctx context.Context, q repository.OrderLineQuery) ([]metrics.Alert, error) {
	overview, err := s.Overview(ctx, q)
	if err != nil {
		return nil, err
	}
	return overview.Alerts, nil
}

// Vendors lists the distinct vendor names known to the order view.
func (s *VendorPerformanceService) Vendors(ctx context.Context) ([]string, error) {
	return s.Repo.ListVendors(ctx)
}

// Arrivals lists arrival notes with an ETA inside the window.
func (s *VendorPerformanceService) Arrivals(ctx context.Context, start, end time.Time) ([]models.ArrivalNote, error) {
	return s.Repo.ListArrivalsBetween(ctx, start, end)
}

func (s *VendorPerformanceService) calc() *metrics.Calculator {
	if s.Calc != nil {
		return s.Calc
	}
	return metrics.NewCalculator()
}

func (s *VendorPerformanceService) thresholds() metrics.Thresholds {
	if s.Thresholds == (metrics.Thresholds{}) {
		return metrics.DefaultThresholds
	}
	return s.Thresholds
}

func (s *VendorPerformanceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *VendorPerformanceService) cacheKey(op string, q any) string {
	raw, err := json.Marshal(q)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return "il:" + op + ":" + hex.EncodeToString(sum[:8])
}

func (s *VendorPerformanceService) setCached(ctx context.Context, key string, val any) {
	if s.Cache == nil || key == "" {
		return
	}
	raw, err := json.Marshal(val)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		}
		return
	}
	s.Cache.Set(ctx, key, raw, s.TTL)
}

func getCached[T any](ctx context.Context, c cache.Cache, key string) (*T, bool) {
	if c == nil || key == "" {
		return nil, false
	}
	raw, ok := c.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return &out, true
}

// rollupByPeriod collapses per-vendor buckets into one bucket per period so
// growth reflects the whole dataset.
func rollupByPeriod(buckets []metrics.PeriodBucket) []metrics.PeriodBucket {
	byPeriod := map[time.Time]*metrics.PeriodBucket{}
	for _, b := range buckets {
		agg := byPeriod[b.PeriodStart]
		if agg == nil {
			rollup := b
			rollup.VendorName = ""
			byPeriod[b.PeriodStart] = &rollup
			continue
		}
		agg.POCount += b.POCount
		agg.LineCount += b.LineCount
		agg.ProductCount += b.ProductCount
		agg.OrderValue = agg.OrderValue.Add(b.OrderValue)
		agg.InvoicedValue = agg.InvoicedValue.Add(b.InvoicedValue)
		agg.PendingDeliveryValue = agg.PendingDeliveryValue.Add(b.PendingDeliveryValue)
	}
	out := make([]metrics.PeriodBucket, 0, len(byPeriod))
	for _, b := range byPeriod {
		b.ConversionRate = metrics.ConversionRate(
			b.InvoicedValue.InexactFloat64(),
			b.OrderValue.InexactFloat64(),
		)
		out = append(out, *b)
	}
	return out
}
