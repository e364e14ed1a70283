package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"inboundlogistics/internal/metrics"
	"inboundlogistics/internal/service"
)

// PerformanceHandler serves the vendor performance read API.
type PerformanceHandler struct {
	Service      *service.VendorPerformanceService
	WindowMonths int
}

func (h *PerformanceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/performance")
	group.GET("/overview", h.overview)
	group.GET("/vendors", h.vendors)
	group.GET("/vendors/:name", h.vendor)
	group.GET("/periods", h.periods)
	group.GET("/growth", h.growth)
	group.GET("/alerts", h.alerts)
}

// @Summary Vendor performance overview
// @Tags performance
// @Param start query string false "window start (YYYY-MM-DD)"
// @Param end query string false "window end (YYYY-MM-DD)"
// @Param vendor query string false "vendor name"
// @Success 200 {object} map[string]any
// @Router /api/v1/performance/overview [get]
func (h *PerformanceHandler) overview(c *gin.Context) {
	q, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	overview, err := h.Service.Overview(c.Request.Context(), q)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, overview, map[string]any{
		"start": q.Start.Format(dateLayout),
		"end":   q.End.Format(dateLayout),
	})
}

// @Summary List known vendors
// @Tags performance
// @Success 200 {object} map[string]any
// @Router /api/v1/performance/vendors [get]
func (h *PerformanceHandler) vendors(c *gin.Context) {
	names, err := h.Service.Vendors(c.Request.Context())
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, names, nil)
}

// @Summary Single vendor summary
// @Tags performance
// @Param name path string true "vendor name"
// @Success 200 {object} map[string]any
// @Router /api/v1/performance/vendors/{name} [get]
func (h *PerformanceHandler) vendor(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		Error(c, http.StatusBadRequest, "vendor name required", nil)
		return
	}
	q, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	sum, err := h.Service.VendorSummary(c.Request.Context(), name, q)
	if err != nil {
		Fail(c, err)
		return
	}
	if sum == nil {
		Error(c, http.StatusNotFound, "vendor not found in window", nil)
		return
	}
	Ok(c, sum, nil)
}

// @Summary Period aggregates
// @Tags performance
// @Param period query string false "monthly | quarterly | yearly"
// @Param dimension query string false "po_date | etd | eta"
// @Success 200 {object} map[string]any
// @Router /api/v1/performance/periods [get]
func (h *PerformanceHandler) periods(c *gin.Context) {
	q, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	periodType := metrics.PeriodType(c.DefaultQuery("period", string(metrics.PeriodMonthly)))
	dim := metrics.DateDimension(c.DefaultQuery("dimension", string(metrics.DimOrderDate)))

	buckets, err := h.Service.PeriodBuckets(c.Request.Context(), q, periodType, dim)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, buckets, map[string]any{"period": string(periodType), "dimension": string(dim)})
}

// @Summary Period-over-period growth
// @Tags performance
// @Param period query string false "monthly | quarterly | yearly"
// @Success 200 {object} map[string]any
// @Router /api/v1/performance/growth [get]
func (h *PerformanceHandler) growth(c *gin.Context) {
	q, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	periodType := metrics.PeriodType(c.DefaultQuery("period", string(metrics.PeriodMonthly)))
	growth, err := h.Service.GrowthSeries(c.Request.Context(), q, periodType)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, growth, map[string]any{"period": string(periodType)})
}

// @Summary Active alerts for the window
// @Tags performance
// @Success 200 {object} map[string]any
// @Router /api/v1/performance/alerts [get]
func (h *PerformanceHandler) alerts(c *gin.Context) {
	q, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	alerts, err := h.Service.Alerts(c.Request.Context(), q)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, alerts, nil)
}
