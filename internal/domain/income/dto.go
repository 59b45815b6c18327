package income

import (
	"time"

	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateIncomeRequest struct {
	DoctorID         string          `json:"doctor_id"`
	PatientID        *string         `json:"patient_id,omitempty"`
	PatientFirstName *string         `json:"patient_first_name,omitempty"`
	PatientLastName  *string         `json:"patient_last_name,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	ServiceDate      string          `json:"service_date"`
	Note             *string         `json:"note,omitempty"`
}

type ListIncomeRequest struct {
	From          string
	To            string
	DoctorID      string
	PaymentMethod string
}

type IncomeResponse struct {
	ID               string          `json:"id"`
	PatientID        string          `json:"patient_id"`
	PatientFirstName *string         `json:"patient_first_name,omitempty"`
	PatientLastName  string          `json:"patient_last_name"`
	DoctorID         string          `json:"doctor_id"`
	Amount           decimal.Decimal `json:"amount"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	ServiceDate      string          `json:"service_date"`
	Note             *string         `json:"note,omitempty"`
	// Commission is the disbursement recorded alongside the income, when the doctor earns one.
	Commission *decimal.Decimal `json:"commission,omitempty"`
}

func NewIncomeResponse(r Record) IncomeResponse {
	return IncomeResponse{
		ID:               r.ID,
		PatientID:        r.PatientID,
		PatientFirstName: r.PatientFirstName,
		PatientLastName:  r.PatientLastName,
		DoctorID:         r.DoctorID,
		Amount:           r.Amount,
		PaymentMethod:    r.PaymentMethod,
		ServiceDate:      r.ServiceDate.Format(time.DateOnly),
		Note:             r.Note,
	}
}

func (r *CreateIncomeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.DoctorID) {
		errs = append(errs, validator.ValidationError{Field: "doctor_id", Message: "doctor_id is required"})
	}
	if (r.PatientID == nil || validator.IsEmpty(*r.PatientID)) && (r.PatientLastName == nil || validator.IsEmpty(*r.PatientLastName)) {
		errs = append(errs, validator.ValidationError{Field: "patient_last_name", Message: "patient_id or patient_last_name is required"})
	}
	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: ErrInvalidAmount.Error()})
	}
	if !r.PaymentMethod.Valid() {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: ErrInvalidPaymentMethod.Error()})
	}
	if _, ok := validator.IsValidDate(r.ServiceDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "service_date", Message: "service_date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
