package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/policlinic/clinic-backend-go/internal/domain/commission"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
)

type DoctorHandler interface {
	Stats(w http.ResponseWriter, r *http.Request)
	LifetimeStats(w http.ResponseWriter, r *http.Request)
	Overview(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	ByPatientSurname(w http.ResponseWriter, r *http.Request)
}

type doctorHandlerImpl struct {
	commissionService commission.CommissionService
}

func NewDoctorHandler(commissionService commission.CommissionService) DoctorHandler {
	return &doctorHandlerImpl{commissionService: commissionService}
}

func (h *doctorHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.commissionService.DoctorStats(r.Context(), chi.URLParam(r, "id"), rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, commission.NewDoctorStatsResponse(stats))
}

func (h *doctorHandlerImpl) LifetimeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.commissionService.LifetimeStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, commission.NewDoctorStatsResponse(stats))
}

func (h *doctorHandlerImpl) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.commissionService.DoctorOverview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, commission.DoctorOverviewResponse{
		DoctorID: overview.DoctorID,
		Lifetime: commission.NewDoctorStatsResponse(overview.Lifetime),
		Today:    commission.NewDoctorStatsResponse(overview.Today),
	})
}

func (h *doctorHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	rng, err := rangeParams(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buckets, err := h.commissionService.DoctorMonthly(r.Context(), chi.URLParam(r, "id"), rng.From, rng.To)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, commission.NewBucketResponses(buckets))
}

func (h *doctorHandlerImpl) ByPatientSurname(w http.ResponseWriter, r *http.Request) {
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

	comparisons, err := h.commissionService.DoctorsByPatientSurname(r.Context(), commission.PatientSurnameQuery{
		PatientLastName: r.URL.Query().Get("patient_last_name"),
		From:            from,
		To:              to,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]commission.DoctorComparisonResponse, 0, len(comparisons))
	for _, c := range comparisons {
		result = append(result, commission.NewDoctorComparisonResponse(c))
	}
	response.Success(w, result)
}
