package export

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
)

func TestArrivalCalendar(t *testing.T) {
	eta := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	arrivals := []models.ArrivalNote{
		{
			ArrivalNoteNumber:      "CAN-001",
			PONumber:               "PO-9",
			VendorName:             "Acme, Inc",
			ProductName:            "Widget",
			ETA:                    &eta,
			PendingStockinQuantity: decimal.NewFromInt(30),
		},
		{ArrivalNoteNumber: "CAN-002", PONumber: "PO-10"}, // no ETA, skipped
	}

	ics := ArrivalCalendar(arrivals, time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC))

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") {
		t.Fatalf("missing calendar prologue: %q", ics[:30])
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Fatalf("missing calendar epilogue")
	}
	if n := strings.Count(ics, "BEGIN:VEVENT"); n != 1 {
		t.Fatalf("events=%d want=1", n)
	}
	for _, want := range []string{
		"DTSTART;VALUE=DATE:20250714",
		"DTEND;VALUE=DATE:20250715",
		"DTSTAMP:20250701T080000Z",
		`SUMMARY:Arrival CAN-001 (Acme\, Inc)`,
	} {
		if !strings.Contains(ics, want) {
			t.Fatalf("missing %q in:\n%s", want, ics)
		}
	}
}

func TestEscapeICS(t *testing.T) {
	got := escapeICS("a;b,c\\d\ne")
	want := `a\;b\,c\\d\ne`
	if got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
}
