package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"inboundlogistics/internal/export"
	"inboundlogistics/internal/models"
	"inboundlogistics/internal/repository"
)

// ReportFilters is the filter set persisted on a schedule row.
type ReportFilters struct {
	VendorName         string `json:"vendor_name,omitempty"`
	VendorType         string `json:"vendor_type,omitempty"`
	VendorLocationType string `json:"vendor_location_type,omitempty"`
	Brand              string `json:"brand,omitempty"`
	WindowMonths       int    `json:"window_months,omitempty"`
}

// ReportService renders and delivers scheduled email reports. RunDue is
// invoked by the cron runner; Deliver is also callable directly for ad-hoc
// sends.
type ReportService struct {
	Repo         repository.Repository
	Performance  *VendorPerformanceService
	Mailer       export.Mailer
	Logger       *zap.Logger
	WindowMonths int

	Now func() time.Time
}

// RunDue finds enabled schedules whose cron expression has fired since their
// last run and delivers each. One failing schedule does not stop the rest.
func (s *ReportService) RunDue(ctx context.Context) error {
	schedules, err := s.Repo.ListSchedules(ctx, repository.ScheduleQuery{EnabledOnly: true})
	if err != nil {
		return err
	}
	now := s.now()
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	for i := range schedules {
		sched := schedules[i]
		spec, err := parser.Parse(sched.CronExpr)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("bad schedule cron expression",
					zap.Uint64("schedule_id", sched.ID), zap.Error(err))
			}
			continue
		}
		anchor := sched.CreatedAt
		if sched.LastRunAt != nil {
			anchor = *sched.LastRunAt
		}
		if spec.Next(anchor).After(now) {
			continue
		}
		if err := s.Deliver(ctx, &sched); err != nil && s.Logger != nil {
			s.Logger.Warn("report delivery failed",
				zap.Uint64("schedule_id", sched.ID),
				zap.String("report_type", sched.ReportType),
				zap.Error(err))
		}
	}
	return nil
}

// Deliver renders one schedule's report, emails it, and records the run.
func (s *ReportService) Deliver(ctx context.Context, sched *models.ReportSchedule) error {
	now := s.now()
	run := &models.ReportRun{
		ID:         uuid.NewString(),
		ScheduleID: sched.ID,
		Status:     models.RunStatusOK,
		StartedAt:  now,
	}

	var recipients []string
	if err := json.Unmarshal(sched.Recipients, &recipients); err != nil {
		return fmt.Errorf("schedule %d recipients: %w", sched.ID, err)
	}
	run.Recipients = len(recipients)

	err := s.deliver(ctx, sched, recipients, now)
	if err != nil {
		run.Status = models.RunStatusFailed
		run.Error = err.Error()
	}
	finished := s.now()
	run.FinishedAt = &finished

	if insertErr := s.Repo.InsertReportRun(ctx, run); insertErr != nil && s.Logger != nil {
		s.Logger.Warn("report run insert failed", zap.Error(insertErr))
	}
	sched.LastRunAt = &now
	if updErr := s.Repo.UpdateSchedule(ctx, sched); updErr != nil && s.Logger != nil {
		s.Logger.Warn("schedule update failed", zap.Error(updErr))
	}
	return err
}

func (s *ReportService) deliver(ctx context.Context, sched *models.ReportSchedule, recipients []string, now time.Time) error {
	if s.Mailer == nil {
		return fmt.Errorf("mail delivery disabled")
	}

	var filters ReportFilters
	if len(sched.Filters) > 0 {
		if err := json.Unmarshal(sched.Filters, &filters); err != nil {
			return fmt.Errorf("schedule %d filters: %w", sched.ID, err)
		}
	}

	switch sched.ReportType {
	case models.ReportVendorPerformance:
		return s.deliverPerformance(ctx, sched, recipients, filters, now)
	case models.ReportPendingReceipt:
		return s.deliverPendingReceipt(ctx, sched, recipients, now)
	default:
		return fmt.Errorf("unknown report type %q", sched.ReportType)
	}
}

func (s *ReportService) deliverPerformance(ctx context.Context, sched *models.ReportSchedule, recipients []string, filters ReportFilters, now time.Time) error {
	months := filters.WindowMonths
	if months <= 0 {
		months = s.WindowMonths
	}
	if months <= 0 {
		months = 6
	}
	q := repository.OrderLineQuery{
		Start:              now.AddDate(0, -months, 0),
		End:                now,
		VendorName:         filters.VendorName,
		VendorType:         filters.VendorType,
		VendorLocationType: filters.VendorLocationType,
		Brand:              filters.Brand,
		ExcludeCancelled:   true,
	}

	overview, err := s.Performance.Overview(ctx, q)
	if err != nil {
		return err
	}
	body, err := export.PerformanceHTML(overview.Summaries, overview.Alerts, q.Start, q.End)
	if err != nil {
		return err
	}
	workbook, err := export.ExcelWorkbook(overview.Summaries, nil)
	if err != nil {
		return err
	}

	arrivals, err := s.Performance.Arrivals(ctx, now, now.AddDate(0, 1, 0))
	if err != nil {
		return err
	}

	attachments := []export.Attachment{
		{
			Filename:    fmt.Sprintf("vendor-performance-%s.xlsx", now.Format("2006-01-02")),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        workbook,
		},
	}
	if len(arrivals) > 0 {
		attachments = append(attachments, export.Attachment{
			Filename:    "upcoming-arrivals.ics",
			ContentType: "text/calendar",
			Data:        []byte(export.ArrivalCalendar(arrivals, now)),
		})
	}

	subject := fmt.Sprintf("Vendor Performance Report %s", now.Format("2006-01-02"))
	return s.Mailer.Send(recipients, subject, body, attachments)
}

func (s *ReportService) deliverPendingReceipt(ctx context.Context, sched *models.ReportSchedule, recipients []string, now time.Time) error {
	pending, err := s.Repo.ListPendingReceipts(ctx)
	if err != nil {
		return err
	}
	body, err := export.PendingReceiptHTML(pending, now)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Pending Receipt Report %s", now.Format("2006-01-02"))
	return s.Mailer.Send(recipients, subject, body, nil)
}

func (s *ReportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}
