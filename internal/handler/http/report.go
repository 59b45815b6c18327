package http

import (
	"net/http"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
	"github.com/shopspring/decimal"
)

type ReportHandler interface {
	DailyPnL(w http.ResponseWriter, r *http.Request)
	AvgPaymentPerPatient(w http.ResponseWriter, r *http.Request)
	AvgSalaryByRole(w http.ResponseWriter, r *http.Request)
	MonthlyOutcome(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

type averageResponse struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Average decimal.Decimal `json:"average"`
}

func (h *reportHandlerImpl) DailyPnL(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rows, err := h.reportService.DailyPnL(r.Context(), rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, rows, &response.Meta{
		From:       period.DayKey(rng.From),
		To:         period.DayKey(rng.To),
		TotalItems: len(rows),
	})
}

func (h *reportHandlerImpl) AvgPaymentPerPatient(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	avg, err := h.reportService.AveragePaymentPerPatient(r.Context(), rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, averageResponse{
		From:    period.DayKey(rng.From),
		To:      period.DayKey(rng.To),
		Average: avg,
	})
}

func (h *reportHandlerImpl) AvgSalaryByRole(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	byRole, err := h.reportService.AverageSalaryByRole(r.Context(), rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, byRole)
}

func (h *reportHandlerImpl) MonthlyOutcome(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	months, err := h.reportService.MonthlyOutcome(r.Context(), rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, months)
}
