package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	Hours(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *timesheetHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
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

	days, err := h.timesheetService.ComputeHours(r.Context(), staffID, rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.NewDailyHoursResponse(days))
}

func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
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

	entries, err := h.timesheetService.List(r.Context(), staffID, rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet entry created", result)
}

func (h *timesheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req timesheet.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.timesheetService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet entry deleted", nil)
}
