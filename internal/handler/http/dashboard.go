package http

import (
	"net/http"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/middleware"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	Clinic(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	reportService report.ReportService
	now           func() time.Time
}

func NewDashboardHandler(reportService report.ReportService, now func() time.Time) DashboardHandler {
	if now == nil {
		now = time.Now
	}
	return &dashboardHandlerImpl{reportService: reportService, now: now}
}

func (h *dashboardHandlerImpl) Clinic(w http.ResponseWriter, r *http.Request) {
	from, err := optionalDate(r, "from")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	to, err := optionalDate(r, "to")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	dashboard, err := h.reportService.ClinicDashboard(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}

// Me serves the caller's own dashboard. Without from and to it covers the current month to date.
func (h *dashboardHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	staffID, err := middleware.StaffIDFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rng := period.MonthToDate(h.now())
	q := r.URL.Query()
	if q.Get("from") != "" || q.Get("to") != "" {
		if rng, err = rangeParams(r); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	dashboard, err := h.reportService.StaffSelfDashboard(r.Context(), staffID, rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, dashboard)
}
