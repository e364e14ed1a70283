package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"inboundlogistics/internal/export"
	"inboundlogistics/internal/metrics"
	"inboundlogistics/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves file downloads: the Excel report and the arrival
// calendar feed.
type ExportHandler struct {
	Service      *service.VendorPerformanceService
	WindowMonths int
}

func (h *ExportHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/export")
	group.GET("/performance.xlsx", h.performanceExcel)
	group.GET("/arrivals.ics", h.arrivalCalendar)
}

// @Summary Download the vendor performance workbook
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200
// @Router /api/v1/export/performance.xlsx [get]
func (h *ExportHandler) performanceExcel(c *gin.Context) {
	q, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	ctx := c.Request.Context()
	overview, err := h.Service.Overview(ctx, q)
	if err != nil {
		Fail(c, err)
		return
	}
	buckets, err := h.Service.PeriodBuckets(ctx, q, metrics.PeriodMonthly, metrics.DimOrderDate)
	if err != nil {
		Fail(c, err)
		return
	}
	raw, err := export.ExcelWorkbook(overview.Summaries, buckets)
	if err != nil {
		Fail(c, err)
		return
	}
	filename := fmt.Sprintf("vendor-performance-%s.xlsx", q.End.Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, raw)
}

// @Summary Upcoming arrivals as an iCalendar feed
// @Tags export
// @Produce text/calendar
// @Param days query int false "look-ahead days (default 30)"
// @Success 200
// @Router /api/v1/export/arrivals.ics [get]
func (h *ExportHandler) arrivalCalendar(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			Error(c, http.StatusBadRequest, "days must be a positive integer", nil)
			return
		}
		days = parsed
	}
	now := time.Now().UTC()
	arrivals, err := h.Service.Arrivals(c.Request.Context(), now, now.AddDate(0, 0, days))
	if err != nil {
		Fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="upcoming-arrivals.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(export.ArrivalCalendar(arrivals, now)))
}
