package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report types handled by the scheduler.
const (
	ReportVendorPerformance = "vendor_performance"
	ReportPendingReceipt    = "pending_receipt"
)

// Report run outcomes.
const (
	RunStatusOK     = "ok"
	RunStatusFailed = "failed"
)

// ReportSchedule is a recurring email report. Recipients and Filters are
// stored as JSON so schedule rows survive filter-set changes without
// migrations.
type ReportSchedule struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement"`
	Name       string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	ReportType string         `gorm:"type:varchar(40);not null;index"`
	CronExpr   string         `gorm:"type:varchar(100);not null"`
	Recipients datatypes.JSON `gorm:"type:json;not null"`
	Filters    datatypes.JSON `gorm:"type:json"`
	Enabled    bool           `gorm:"not null;default:true;index"`
	LastRunAt  *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ReportSchedule) TableName() string {
	return "report_schedules"
}

// ReportRun records one delivery attempt for a schedule.
type ReportRun struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	ScheduleID uint64    `gorm:"not null;index"`
	Status     string    `gorm:"type:varchar(20);not null"`
	Error      string    `gorm:"type:text"`
	Recipients int       `gorm:"not null;default:0"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt *time.Time
}

func (ReportRun) TableName() string {
	return "report_runs"
}
