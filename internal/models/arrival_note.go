package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ArrivalNote is a container-arrival-note row from can_tracking_full_view,
// used by the pending-receipt report and the arrival calendar.
type ArrivalNote struct {
	ArrivalNoteNumber string `gorm:"column:arrival_note_number"`
	PONumber          string `gorm:"column:po_number"`

	VendorCode string `gorm:"column:vendor_code"`
	VendorName string `gorm:"column:vendor_name"`

	ProductName string `gorm:"column:product_name"`
	PTCode      string `gorm:"column:pt_code"`

	ETA         *time.Time `gorm:"column:eta"`
	ArrivalDate *time.Time `gorm:"column:arrival_date"`

	PendingStockinQuantity decimal.Decimal `gorm:"column:pending_stockin_quantity;type:numeric(30,10)"`
	PendingValueUSD        decimal.Decimal `gorm:"column:pending_value_usd;type:numeric(30,10)"`

	DaysSinceArrival int    `gorm:"column:days_since_arrival"`
	Status           string `gorm:"column:status"`
}

func (ArrivalNote) TableName() string {
	return "can_tracking_full_view"
}
