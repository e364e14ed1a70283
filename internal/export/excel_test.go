package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"inboundlogistics/internal/metrics"
)

func TestExcelWorkbook(t *testing.T) {
	summaries := []metrics.VendorPerformanceSummary{
		{
			VendorName:         "Acme",
			VendorCode:         "V-1",
			TotalPOs:           3,
			CompletedPOs:       2,
			CompletionRate:     66.7,
			ConversionRate:     57.1,
			PerformanceScore:   71.4,
			PerformanceTier:    "Fair",
			TotalOrderValue:    decimal.NewFromInt(3500),
			TotalInvoicedValue: decimal.NewFromInt(2000),
			OutstandingValue:   decimal.NewFromInt(1500),
		},
	}
	buckets := []metrics.PeriodBucket{
		{
			VendorName:     "Acme",
			PeriodStart:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			POCount:        2,
			LineCount:      4,
			OrderValue:     decimal.NewFromInt(2000),
			InvoicedValue:  decimal.NewFromInt(1000),
			ConversionRate: 50,
		},
	}

	raw, err := ExcelWorkbook(summaries, buckets)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatalf("summary rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("summary rows=%d want=2", len(rows))
	}
	if rows[0][0] != "Vendor" || rows[1][0] != "Acme" {
		t.Fatalf("unexpected summary cells: %v", rows)
	}

	trend, err := f.GetRows(trendSheet)
	if err != nil {
		t.Fatalf("trend rows: %v", err)
	}
	if len(trend) != 2 {
		t.Fatalf("trend rows=%d want=2", len(trend))
	}
	if trend[1][1] != "2025-03-01" {
		t.Fatalf("period cell=%q want=2025-03-01", trend[1][1])
	}
}

func TestExcelWorkbookNoBuckets(t *testing.T) {
	raw, err := ExcelWorkbook(nil, nil)
	if err != nil {
		t.Fatalf("workbook: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()

	if _, err := f.GetRows(trendSheet); err == nil {
		t.Fatalf("expected trend sheet to be absent")
	}
}
