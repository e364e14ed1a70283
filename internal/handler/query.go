package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"inboundlogistics/internal/repository"
)

const dateLayout = "2006-01-02"

// parseOrderQuery reads the shared window and filter parameters. An absent
// window defaults to the trailing defaultMonths months; end is inclusive to
// end of day.
func parseOrderQuery(c *gin.Context, defaultMonths int) (repository.OrderLineQuery, error) {
	q := repository.OrderLineQuery{
		VendorName:         strings.TrimSpace(c.Query("vendor")),
		VendorType:         strings.TrimSpace(c.Query("vendor_type")),
		VendorLocationType: strings.TrimSpace(c.Query("vendor_location")),
		Brand:              strings.TrimSpace(c.Query("brand")),
		ExcludeCancelled:   true,
	}

	start, err := parseDate(c.Query("start"))
	if err != nil {
		return q, err
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		return q, err
	}

	now := time.Now().UTC()
	if end.IsZero() {
		end = now
	} else {
		end = end.AddDate(0, 0, 1).Add(-time.Second)
	}
	if start.IsZero() {
		if defaultMonths <= 0 {
			defaultMonths = 6
		}
		start = end.AddDate(0, -defaultMonths, 0)
	}
	if start.After(end) {
		return q, fmt.Errorf("start %s is after end %s", start.Format(dateLayout), end.Format(dateLayout))
	}

	q.Start = start
	q.End = end
	return q, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}
