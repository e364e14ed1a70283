// Package export renders dashboard results as downloadable artifacts:
// Excel workbooks, iCalendar feeds, and email bodies.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"inboundlogistics/internal/metrics"
)

const (
	summarySheet = "Vendor Performance"
	trendSheet   = "Period Trend"
)

var summaryHeaders = []string{
	"Vendor", "Code", "Type", "Total POs", "Completed POs",
	"Completion %", "On-Time %", "Conversion %", "Payment %",
	"Score", "Tier", "Order Value USD", "Invoiced Value USD", "Outstanding USD",
}

var trendHeaders = []string{
	"Vendor", "Period", "POs", "Lines", "Products",
	"Order Value USD", "Invoiced Value USD", "Pending USD", "Conversion %",
}

// ExcelWorkbook renders one summary sheet and, when buckets are present, a
// period-trend sheet. Returns the serialized .xlsx bytes.
func ExcelWorkbook(summaries []metrics.VendorPerformanceSummary, buckets []metrics.PeriodBucket) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(summarySheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, s := range summaries {
		row := i + 2
		values := []any{
			s.VendorName, s.VendorCode, s.VendorType,
			s.TotalPOs, s.CompletedPOs,
			s.CompletionRate, s.OnTimeRate, s.ConversionRate, s.PaymentProgress,
			s.PerformanceScore, s.PerformanceTier,
			s.TotalOrderValue.InexactFloat64(),
			s.TotalInvoicedValue.InexactFloat64(),
			s.OutstandingValue.InexactFloat64(),
		}
		if err := setRow(f, summarySheet, row, values); err != nil {
			return nil, err
		}
	}

	if len(buckets) > 0 {
		if _, err := f.NewSheet(trendSheet); err != nil {
			return nil, err
		}
		for col, h := range trendHeaders {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(trendSheet, cell, h); err != nil {
				return nil, err
			}
		}
		for i, b := range buckets {
			row := i + 2
			values := []any{
				b.VendorName, b.PeriodStart.Format("2006-01-02"),
				b.POCount, b.LineCount, b.ProductCount,
				b.OrderValue.InexactFloat64(),
				b.InvoicedValue.InexactFloat64(),
				b.PendingDeliveryValue.InexactFloat64(),
				b.ConversionRate,
			}
			if err := setRow(f, trendSheet, row, values); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
