package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"

	"inboundlogistics/internal/models"
	"inboundlogistics/internal/repository"
	"inboundlogistics/internal/service"
)

// ScheduleHandler manages recurring report schedules.
type ScheduleHandler struct {
	Repo    repository.Repository
	Reports *service.ReportService
}

type scheduleRequest struct {
	Name       string                `json:"name" binding:"required,max=100"`
	ReportType string                `json:"report_type" binding:"required,oneof=vendor_performance pending_receipt"`
	CronExpr   string                `json:"cron_expr" binding:"required,cronexpr"`
	Recipients []string              `json:"recipients" binding:"required,min=1,dive,email"`
	Filters    service.ReportFilters `json:"filters"`
	Enabled    *bool                 `json:"enabled"`
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cronexpr", func(fl validator.FieldLevel) bool {
			parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
			_, err := parser.Parse(fl.Field().String())
			return err == nil
		})
	}
}

func (h *ScheduleHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/schedules")
	group.GET("", h.list)
	group.POST("", h.create)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
	group.POST("/:id/run", h.runNow)
	group.GET("/:id/runs", h.listRuns)
}

// @Summary List report schedules
// @Tags schedules
// @Success 200 {object} map[string]any
// @Router /api/v1/schedules [get]
func (h *ScheduleHandler) list(c *gin.Context) {
	items, err := h.Repo.ListSchedules(c.Request.Context(), repository.ScheduleQuery{
		ReportType: c.Query("report_type"),
	})
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Create a report schedule
// @Tags schedules
// @Param body body scheduleRequest true "schedule"
// @Success 200 {object} map[string]any
// @Router /api/v1/schedules [post]
func (h *ScheduleHandler) create(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := req.toModel(0)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Repo.CreateSchedule(c.Request.Context(), item); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Get one schedule
// @Tags schedules
// @Param id path int true "schedule id"
// @Success 200 {object} map[string]any
// @Router /api/v1/schedules/{id} [get]
func (h *ScheduleHandler) get(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}
	Ok(c, item, nil)
}

// @Summary Update a schedule
// @Tags schedules
// @Param id path int true "schedule id"
// @Param body body scheduleRequest true "schedule"
// @Success 200 {object} map[string]any
// @Router /api/v1/schedules/{id} [put]
func (h *ScheduleHandler) update(c *gin.Context) {
	existing, ok := h.find(c)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item, err := req.toModel(existing.ID)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	item.CreatedAt = existing.CreatedAt
	item.LastRunAt = existing.LastRunAt
	if err := h.Repo.UpdateSchedule(c.Request.Context(), item); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, item, nil)
}

// @Summary Delete a schedule
// @Tags schedules
// @Param id path int true "schedule id"
// @Success 200 {object} map[string]any
// @Router /api/v1/schedules/{id} [delete]
func (h *ScheduleHandler) remove(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}
	if err := h.Repo.DeleteSchedule(c.Request.Context(), item.ID); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"deleted": item.ID}, nil)
}

// @Summary Deliver a schedule's report now
// @Tags schedules
// @Param id path int true "schedule id"
// @Success 200 {object} map[string]any
// @Router /api/v1/schedules/{id}/run [post]
func (h *ScheduleHandler) runNow(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}
	if h.Reports == nil {
		Error(c, http.StatusServiceUnavailable, "report delivery unavailable", nil)
		return
	}
	if err := h.Reports.Deliver(c.Request.Context(), item); err != nil {
		Fail(c, err)
		return
	}
	Ok(c, gin.H{"delivered": item.ID}, nil)
}

// @Summary List delivery attempts for a schedule
// @Tags schedules
// @Param id path int true "schedule id"
// @Success 200 {object} map[string]any
// @Router /api/v1/schedules/{id}/runs [get]
func (h *ScheduleHandler) listRuns(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}
	runs, err := h.Repo.ListReportRuns(c.Request.Context(), item.ID, 50)
	if err != nil {
		Fail(c, err)
		return
	}
	Ok(c, runs, nil)
}

func (h *ScheduleHandler) find(c *gin.Context) (*models.ReportSchedule, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid schedule id", nil)
		return nil, false
	}
	item, err := h.Repo.GetSchedule(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return nil, false
	}
	if item == nil {
		Error(c, http.StatusNotFound, "schedule not found", nil)
		return nil, false
	}
	return item, true
}

func (r scheduleRequest) toModel(id uint64) (*models.ReportSchedule, error) {
	recipients, err := json.Marshal(r.Recipients)
	if err != nil {
		return nil, err
	}
	filters, err := json.Marshal(r.Filters)
	if err != nil {
		return nil, err
	}
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return &models.ReportSchedule{
		ID:         id,
		Name:       r.Name,
		ReportType: r.ReportType,
		CronExpr:   r.CronExpr,
		Recipients: datatypes.JSON(recipients),
		Filters:    datatypes.JSON(filters),
		Enabled:    enabled,
	}, nil
}
