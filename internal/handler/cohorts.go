package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inboundlogistics/internal/repository"
	"inboundlogistics/internal/service"
)

// CohortHandler exposes the two cohort views. They answer different
// questions and are deliberately separate endpoints.
type CohortHandler struct {
	Service      *service.VendorPerformanceService
	WindowMonths int
}

func (h *CohortHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/cohorts")
	group.GET("/orders", h.orders)
	group.GET("/invoices", h.invoices)
}

// @Summary Order cohort: POs placed in the window with lifetime invoicing
// @Tags cohorts
// @Success 200 {object} map[string]any
// @Router /api/v1/cohorts/orders [get]
func (h *CohortHandler) orders(c *gin.Context) {
	q, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	cohorts, err := h.Service.OrderCohorts(c.Request.Context(), q)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, cohorts, map[string]any{"cohort": "order"})
}

// @Summary Invoice cohort: invoices dated in the window
// @Tags cohorts
// @Success 200 {object} map[string]any
// @Router /api/v1/cohorts/invoices [get]
func (h *CohortHandler) invoices(c *gin.Context) {
	oq, err := parseOrderQuery(c, h.WindowMonths)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	q := repository.InvoiceLineQuery{
		Start:      oq.Start,
		End:        oq.End,
		VendorName: oq.VendorName,
		VendorType: oq.VendorType,
	}
	cohorts, err := h.Service.InvoiceCohorts(c.Request.Context(), q)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, cohorts, map[string]any{"cohort": "invoice"})
}
