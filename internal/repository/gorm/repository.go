package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"inboundlogistics/internal/metrics"
	"inboundlogistics/internal/models"
	"inboundlogistics/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListOrderLines(ctx context.Context, q repository.OrderLineQuery) ([]models.OrderLine, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.OrderLine{})
	query = applyOrderLineFilters(query, q)
	if !q.Start.IsZero() {
		query = query.Where("po_date >= ?", q.Start)
	}
	if !q.End.IsZero() {
		query = query.Where("po_date <= ?", q.End)
	}
	var items []models.OrderLine
	if err := query.Limit(normalizeLimit(q.Limit, 0)).Find(&items).Error; err != nil {
		return nil, metrics.WrapDataAccess("failed to load purchase order lines", err)
	}
	return items, nil
}

// ListOrderCohortLines matches ListOrderLines; the view already carries each
// line's lifetime invoiced amount, so the order cohort needs no extra join.
func (s *Store) ListOrderCohortLines(ctx context.Context, q repository.OrderLineQuery) ([]models.OrderLine, error) {
	return s.ListOrderLines(ctx, q)
}

func (s *Store) ListInvoiceLines(ctx context.Context, q repository.InvoiceLineQuery) ([]models.InvoiceLine, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.InvoiceLine{})
	if !q.Start.IsZero() {
		query = query.Where("invoice_date >= ?", q.Start)
	}
	if !q.End.IsZero() {
		query = query.Where("invoice_date <= ?", q.End)
	}
	if v := strings.TrimSpace(q.VendorName); v != "" {
		query = query.Where("vendor_name = ?", v)
	}
	if v := strings.TrimSpace(q.VendorType); v != "" {
		query = query.Where("vendor_type = ?", v)
	}
	var items []models.InvoiceLine
	if err := query.Limit(normalizeLimit(q.Limit, 0)).Find(&items).Error; err != nil {
		return nil, metrics.WrapDataAccess("failed to load invoice lines", err)
	}
	return items, nil
}

func (s *Store) ListVendors(ctx context.Context) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var names []string
	err := s.db.WithContext(ctx).
		Model(&models.OrderLine{}).
		Distinct("vendor_name").
		Where("vendor_name <> ''").
		Order("vendor_name asc").
		Pluck("vendor_name", &names).Error
	if err != nil {
		return nil, metrics.WrapDataAccess("failed to list vendors", err)
	}
	return names, nil
}

func (s *Store) ListArrivalsBetween(ctx context.Context, start, end time.Time) ([]models.ArrivalNote, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ArrivalNote{})
	if !start.IsZero() {
		query = query.Where("eta >= ?", start)
	}
	if !end.IsZero() {
		query = query.Where("eta <= ?", end)
	}
	var items []models.ArrivalNote
	if err := query.Order("eta asc").Find(&items).Error; err != nil {
		return nil, metrics.WrapDataAccess("failed to load arrival notes", err)
	}
	return items, nil
}

func (s *Store) ListPendingReceipts(ctx context.Context) ([]models.ArrivalNote, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.ArrivalNote
	err := s.db.WithContext(ctx).
		Model(&models.ArrivalNote{}).
		Where("pending_stockin_quantity > 0").
		Order("days_since_arrival desc").
		Find(&items).Error
	if err != nil {
		return nil, metrics.WrapDataAccess("failed to load pending receipts", err)
	}
	return items, nil
}

func (s *Store) CreateSchedule(ctx context.Context, item *models.ReportSchedule) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateSchedule(ctx context.Context, item *models.ReportSchedule) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteSchedule(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.ReportSchedule{}, id).Error
}

func (s *Store) GetSchedule(ctx context.Context, id uint64) (*models.ReportSchedule, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.ReportSchedule
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSchedules(ctx context.Context, q repository.ScheduleQuery) ([]models.ReportSchedule, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ReportSchedule{})
	if v := strings.TrimSpace(q.ReportType); v != "" {
		query = query.Where("report_type = ?", v)
	}
	if q.EnabledOnly {
		query = query.Where("enabled = ?", true)
	}
	var items []models.ReportSchedule
	if err := query.Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) InsertReportRun(ctx context.Context, item *models.ReportRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateReportRun(ctx context.Context, item *models.ReportRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) ListReportRuns(ctx context.Context, scheduleID uint64, limit int) ([]models.ReportRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ReportRun{})
	if scheduleID > 0 {
		query = query.Where("schedule_id = ?", scheduleID)
	}
	var items []models.ReportRun
	if err := query.Order("started_at desc").Limit(normalizeLimit(limit, 50)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func applyOrderLineFilters(query *gorm.DB, q repository.OrderLineQuery) *gorm.DB {
	if v := strings.TrimSpace(q.VendorName); v != "" {
		query = query.Where("vendor_name = ?", v)
	}
	if v := strings.TrimSpace(q.VendorType); v != "" {
		query = query.Where("vendor_type = ?", v)
	}
	if v := strings.TrimSpace(q.VendorLocationType); v != "" {
		query = query.Where("vendor_location_type = ?", v)
	}
	if v := strings.TrimSpace(q.Brand); v != "" {
		query = query.Where("brand = ?", v)
	}
	if len(q.Statuses) > 0 {
		query = query.Where("status IN ?", q.Statuses)
	}
	if q.ExcludeCancelled {
		query = query.Where("status <> ?", models.StatusCancelled)
	}
	return query
}

func normalizeLimit(limit, fallback int) int {
	if limit > 0 {
		return limit
	}
	if fallback > 0 {
		return fallback
	}
	// gorm treats a negative limit as "no limit".
	return -1
}
