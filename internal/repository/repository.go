package repository

import (
	"context"
	"time"

	"inboundlogistics/internal/models"
)

// OrderLineQuery restricts purchase-order lines by PO date window and the
// standard dashboard filters. Zero-value fields mean "no restriction".
type OrderLineQuery struct {
	Start time.Time
	End   time.Time

	VendorName         string
	VendorType         string
	VendorLocationType string
	Brand              string
	Statuses           []string

	ExcludeCancelled bool
	Limit            int
}

// InvoiceLineQuery restricts invoice lines by invoice date window. This is
// the invoice-cohort population, distinct from the order cohort.
type InvoiceLineQuery struct {
	Start time.Time
	End   time.Time

	VendorName string
	VendorType string
	Limit      int
}

// ScheduleQuery lists report schedules.
type ScheduleQuery struct {
	ReportType  string
	EnabledOnly bool
}

type Repository interface {
	// ListOrderLines returns PO lines whose po_date falls in the window.
	ListOrderLines(ctx context.Context, q OrderLineQuery) ([]models.OrderLine, error)
	// ListOrderCohortLines returns PO lines ordered inside the window with
	// their lifetime invoiced amounts, regardless of invoice dates.
	ListOrderCohortLines(ctx context.Context, q OrderLineQuery) ([]models.OrderLine, error)
	// ListInvoiceLines returns invoice lines dated inside the window.
	ListInvoiceLines(ctx context.Context, q InvoiceLineQuery) ([]models.InvoiceLine, error)
	// ListVendors returns the distinct vendor names present in the order
	// view, sorted ascending.
	ListVendors(ctx context.Context) ([]string, error)
	// ListArrivalsBetween returns arrival notes with an ETA in the window.
	ListArrivalsBetween(ctx context.Context, start, end time.Time) ([]models.ArrivalNote, error)
	// ListPendingReceipts returns arrival notes that have landed but not
	// been stocked in.
	ListPendingReceipts(ctx context.Context) ([]models.ArrivalNote, error)

	CreateSchedule(ctx context.Context, item *models.ReportSchedule) error
	UpdateSchedule(ctx context.Context, item *models.ReportSchedule) error
	DeleteSchedule(ctx context.Context, id uint64) error
	GetSchedule(ctx context.Context, id uint64) (*models.ReportSchedule, error)
	ListSchedules(ctx context.Context, q ScheduleQuery) ([]models.ReportSchedule, error)

	InsertReportRun(ctx context.Context, item *models.ReportRun) error
	UpdateReportRun(ctx context.Context, item *models.ReportRun) error
	ListReportRuns(ctx context.Context, scheduleID uint64, limit int) ([]models.ReportRun, error)
}
