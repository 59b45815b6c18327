package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Suggestions
	Suggestion(w http.ResponseWriter, r *http.Request)
	AcceptSuggestion(w http.ResponseWriter, r *http.Request)

	// Payments
	ListPayments(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
	DeletePayment(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== SUGGESTIONS ==========

func (h *payrollHandlerImpl) Suggestion(w http.ResponseWriter, r *http.Request) {
	staffID, err := requiredQuery(r, "staff_id")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	suggestion, err := h.payrollService.SuggestPayroll(r.Context(), staffID, rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.NewSuggestionResponse(suggestion))
}

func (h *payrollHandlerImpl) AcceptSuggestion(w http.ResponseWriter, r *http.Request) {
	var req payroll.AcceptSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.AcceptSuggestion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll suggestion accepted", result)
}

// ========== PAYMENTS ==========

func (h *payrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	from, to := period.DayKey(rng.From), period.DayKey(rng.To)
	payments, err := h.payrollService.ListPayments(r.Context(), payroll.ListPaymentsRequest{
		StaffID: r.URL.Query().Get("staff_id"),
		From:    from,
		To:      to,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, payments, &response.Meta{From: from, To: to, TotalItems: len(payments)})
}

func (h *payrollHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req payroll.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.RecordPayment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary payment recorded", result)
}

func (h *payrollHandlerImpl) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.payrollService.DeletePayment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary payment deleted", nil)
}
