package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"inboundlogistics/internal/models"
	"inboundlogistics/internal/repository"
	"inboundlogistics/internal/service"
)

type fakeRepo struct {
	orderLines []models.OrderLine
}

func (r *fakeRepo) ListOrderLines(ctx context.Context, q repository.OrderLineQuery) ([]models.OrderLine, error) {
	if q.VendorName == "" {
		return r.orderLines, nil
	}
	var out []models.OrderLine
	for _, l := range r.orderLines {
		if l.VendorName == q.VendorName {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListOrderCohortLines(ctx context.Context, q repository.OrderLineQuery) ([]models.OrderLine, error) {
	return r.ListOrderLines(ctx, q)
}

func (r *fakeRepo) ListInvoiceLines(context.Context, repository.InvoiceLineQuery) ([]models.InvoiceLine, error) {
	return nil, nil
}

func (r *fakeRepo) ListVendors(context.Context) ([]string, error) {
	return []string{"Acme"}, nil
}

func (r *fakeRepo) ListArrivalsBetween(context.Context, time.Time, time.Time) ([]models.ArrivalNote, error) {
	return nil, nil
}

func (r *fakeRepo) ListPendingReceipts(context.Context) ([]models.ArrivalNote, error) {
	return nil, nil
}

func (r *fakeRepo) CreateSchedule(context.Context, *models.ReportSchedule) error { return nil }
func (r *fakeRepo) UpdateSchedule(context.Context, *models.ReportSchedule) error { return nil }
func (r *fakeRepo) DeleteSchedule(context.Context, uint64) error                 { return nil }

func (r *fakeRepo) GetSchedule(context.Context, uint64) (*models.ReportSchedule, error) {
	return nil, nil
}

func (r *fakeRepo) ListSchedules(context.Context, repository.ScheduleQuery) ([]models.ReportSchedule, error) {
	return nil, nil
}

func (r *fakeRepo) InsertReportRun(context.Context, *models.ReportRun) error { return nil }
func (r *fakeRepo) UpdateReportRun(context.Context, *models.ReportRun) error { return nil }

func (r *fakeRepo) ListReportRuns(context.Context, uint64, int) ([]models.ReportRun, error) {
	return nil, nil
}

func newTestEngine(repo repository.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	svc := &service.VendorPerformanceService{Repo: repo}
	(&PerformanceHandler{Service: svc}).Register(engine)
	(&CohortHandler{Service: svc}).Register(engine)
	return engine
}

func testOrderLines() []models.OrderLine {
	return []models.OrderLine{
		{
			PONumber:          "PO-1",
			VendorName:        "Acme",
			PODate:            time.Now().UTC().AddDate(0, -1, 0),
			Status:            models.StatusCompleted,
			TotalAmountUSD:    decimal.NewFromInt(1000),
			InvoicedAmountUSD: decimal.NewFromInt(1000),
		},
	}
}

func doRequest(t *testing.T, engine *gin.Engine, path string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)
	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v\n%s", err, w.Body.String())
	}
	return w, resp
}

func TestOverviewEndpoint(t *testing.T) {
	engine := newTestEngine(&fakeRepo{orderLines: testOrderLines()})

	w, resp := doRequest(t, engine, "/api/v1/performance/overview")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if resp.Code != 0 || resp.Message != "ok" {
		t.Fatalf("resp=%+v", resp)
	}
	data, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("data type %T", resp.Data)
	}
	if data["vendor_count"] != float64(1) {
		t.Fatalf("vendor_count=%v want=1", data["vendor_count"])
	}
}

func TestOverviewRejectsBadDates(t *testing.T) {
	engine := newTestEngine(&fakeRepo{})

	w, _ := doRequest(t, engine, "/api/v1/performance/overview?start=March")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}

	w, _ = doRequest(t, engine, "/api/v1/performance/overview?start=2025-06-01&end=2025-01-01")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("inverted window status=%d want=400", w.Code)
	}
}

func TestVendorEndpointNotFound(t *testing.T) {
	engine := newTestEngine(&fakeRepo{orderLines: testOrderLines()})

	w, _ := doRequest(t, engine, "/api/v1/performance/vendors/Nobody")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", w.Code)
	}
}

func TestPeriodsEndpointRejectsBadDimension(t *testing.T) {
	engine := newTestEngine(&fakeRepo{orderLines: testOrderLines()})

	w, _ := doRequest(t, engine, "/api/v1/performance/periods?dimension=shipped_at")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}
}

func TestOrderCohortEndpoint(t *testing.T) {
	engine := newTestEngine(&fakeRepo{orderLines: testOrderLines()})

	w, resp := doRequest(t, engine, "/api/v1/cohorts/orders")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	items, ok := resp.Data.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("data=%v", resp.Data)
	}
}
