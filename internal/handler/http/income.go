package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/report"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
)

type IncomeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type incomeHandlerImpl struct {
	incomeService income.IncomeService
	reportService report.ReportService
}

func NewIncomeHandler(incomeService income.IncomeService, reportService report.ReportService) IncomeHandler {
	return &incomeHandlerImpl{incomeService: incomeService, reportService: reportService}
}

func (h *incomeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	q := r.URL.Query()
	records, err := h.incomeService.List(r.Context(), income.ListIncomeRequest{
		From:          period.DayKey(rng.From),
		To:            period.DayKey(rng.To),
		DoctorID:      q.Get("doctor_id"),
		PaymentMethod: q.Get("payment_method"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{
		From:       period.DayKey(rng.From),
		To:         period.DayKey(rng.To),
		TotalItems: len(records),
	})
}

func (h *incomeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req income.CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.incomeService.RecordIncome(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Income recorded", result)
}

func (h *incomeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.incomeService.DeleteIncome(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Income record deleted", nil)
}

func (h *incomeHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.reportService.IncomeSummary(r.Context(), rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
