package export

import (
	"fmt"
	"strings"
	"time"

	"inboundlogistics/internal/models"
)

const icsStamp = "20060102T150405Z"

// ArrivalCalendar renders upcoming container arrivals as an iCalendar feed,
// one all-day VEVENT per arrival-note ETA. Output follows RFC 5545 with
// CRLF line endings so Outlook and Google Calendar both accept it.
func ArrivalCalendar(arrivals []models.ArrivalNote, generatedAt time.Time) string {
	var b strings.Builder
	writeLine := func(s string) {
		b.WriteString(s)
		b.WriteString("\r\n")
	}

	writeLine("BEGIN:VCALENDAR")
	writeLine("VERSION:2.0")
	writeLine("PRODID:-//inboundlogistics//arrival-calendar//EN")
	writeLine("CALSCALE:GREGORIAN")
	writeLine("METHOD:PUBLISH")

	stamp := generatedAt.UTC().Format(icsStamp)
	for _, a := range arrivals {
		if a.ETA == nil || a.ETA.IsZero() {
			continue
		}
		day := a.ETA.UTC()
		writeLine("BEGIN:VEVENT")
		writeLine("UID:" + escapeICS(a.ArrivalNoteNumber+"-"+a.PONumber) + "@inboundlogistics")
		writeLine("DTSTAMP:" + stamp)
		writeLine("DTSTART;VALUE=DATE:" + day.Format("20060102"))
		writeLine("DTEND;VALUE=DATE:" + day.AddDate(0, 0, 1).Format("20060102"))
		writeLine("SUMMARY:" + escapeICS(fmt.Sprintf("Arrival %s (%s)", a.ArrivalNoteNumber, a.VendorName)))
		writeLine("DESCRIPTION:" + escapeICS(fmt.Sprintf("PO %s / %s, pending stock-in %s",
			a.PONumber, a.ProductName, a.PendingStockinQuantity.String())))
		writeLine("END:VEVENT")
	}

	writeLine("END:VCALENDAR")
	return b.String()
}

// escapeICS applies the RFC 5545 TEXT escapes.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return r.Replace(s)
}
