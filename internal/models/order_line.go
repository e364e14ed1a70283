package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase order line statuses as reported by purchase_order_full_view.
const (
	StatusPending          = "PENDING"
	StatusInProcess        = "IN_PROCESS"
	StatusPendingInvoicing = "PENDING_INVOICING"
	StatusPendingReceipt   = "PENDING_RECEIPT"
	StatusCompleted        = "COMPLETED"
	StatusOverDelivered    = "OVER_DELIVERED"
	StatusCancelled        = "CANCELLED"
)

const (
	VendorTypeInternal = "Internal"
	VendorTypeExternal = "External"

	VendorLocationDomestic      = "Domestic"
	VendorLocationInternational = "International"
)

// OrderLine is one purchase-order line read from purchase_order_full_view.
// The view is read-only; amounts are normalized to USD upstream. ETD/ETA may
// be null for lines that have not completed.
type OrderLine struct {
	PONumber string `gorm:"column:po_number"`
	POLineID uint64 `gorm:"column:po_line_id"`

	VendorCode         string `gorm:"column:vendor_code"`
	VendorName         string `gorm:"column:vendor_name"`
	VendorType         string `gorm:"column:vendor_type"`
	VendorLocationType string `gorm:"column:vendor_location_type"`

	ProductName string `gorm:"column:product_name"`
	PTCode      string `gorm:"column:pt_code"`
	Brand       string `gorm:"column:brand"`

	PODate time.Time  `gorm:"column:po_date"`
	ETD    *time.Time `gorm:"column:etd"`
	ETA    *time.Time `gorm:"column:eta"`

	BuyingQuantity          decimal.Decimal `gorm:"column:buying_quantity;type:numeric(30,10)"`
	StandardQuantity        decimal.Decimal `gorm:"column:standard_quantity;type:numeric(30,10)"`
	StandardArrivedQuantity decimal.Decimal `gorm:"column:total_standard_arrived_quantity;type:numeric(30,10)"`

	TotalAmountUSD           decimal.Decimal `gorm:"column:total_amount_usd;type:numeric(30,10)"`
	InvoicedAmountUSD        decimal.Decimal `gorm:"column:invoiced_amount_usd;type:numeric(30,10)"`
	OutstandingInvoicedUSD   decimal.Decimal `gorm:"column:outstanding_invoiced_amount_usd;type:numeric(30,10)"`
	OutstandingArrivalUSD    decimal.Decimal `gorm:"column:outstanding_arrival_amount_usd;type:numeric(30,10)"`
	ArrivalCompletionPercent float64         `gorm:"column:arrival_completion_percent"`
	InvoiceCompletionPercent float64         `gorm:"column:invoice_completion_percent"`

	Currency    string `gorm:"column:currency"`
	PaymentTerm string `gorm:"column:payment_term"`

	Status        string `gorm:"column:status"`
	OverDelivered string `gorm:"column:is_over_delivered"`
}

func (OrderLine) TableName() string {
	return "purchase_order_full_view"
}

func (l OrderLine) IsCompleted() bool {
	return l.Status == StatusCompleted
}

// IsOverDelivered reports the view's 'Y'/'N' flag.
func (l OrderLine) IsOverDelivered() bool {
	return l.OverDelivered == "Y"
}
