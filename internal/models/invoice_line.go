package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLine is one purchase-invoice line read from
// purchase_invoice_full_view. Invoice cohorts select on InvoiceDate; the
// underlying order may have been placed in an earlier period.
type InvoiceLine struct {
	InvoiceNumber string `gorm:"column:invoice_number"`
	InvoiceLineID uint64 `gorm:"column:invoice_line_id"`
	PONumber      string `gorm:"column:po_number"`

	VendorCode string `gorm:"column:vendor_code"`
	VendorName string `gorm:"column:vendor_name"`
	VendorType string `gorm:"column:vendor_type"`

	InvoiceDate time.Time  `gorm:"column:invoice_date"`
	DueDate     *time.Time `gorm:"column:due_date"`

	InvoicedAmountUSD    decimal.Decimal `gorm:"column:invoiced_amount_usd;type:numeric(30,10)"`
	PaidAmountUSD        decimal.Decimal `gorm:"column:paid_amount_usd;type:numeric(30,10)"`
	OutstandingAmountUSD decimal.Decimal `gorm:"column:outstanding_amount_usd;type:numeric(30,10)"`

	Currency    string `gorm:"column:currency"`
	PaymentTerm string `gorm:"column:payment_term"`
	Status      string `gorm:"column:status"`
}

func (InvoiceLine) TableName() string {
	return "purchase_invoice_full_view"
}
