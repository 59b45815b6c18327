package payroll

import (
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SuggestionResponse struct {
	StaffID     string          `json:"staff_id"`
	Role        staff.RoleName  `json:"role"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Earned      decimal.Decimal `json:"earned"`
	AlreadyPaid decimal.Decimal `json:"already_paid"`
	Amount      decimal.Decimal `json:"amount"`
}

func NewSuggestionResponse(s Suggestion) SuggestionResponse {
	return SuggestionResponse{
		StaffID:     s.StaffID,
		Role:        s.Role,
		From:        s.Period.From.Format(time.DateOnly),
		To:          s.Period.To.Format(time.DateOnly),
		Earned:      s.Earned,
		AlreadyPaid: s.AlreadyPaid,
		Amount:      s.Amount,
	}
}

type AcceptSuggestionRequest struct {
	StaffID string  `json:"staff_id"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Note    *string `json:"note,omitempty"`
}

func (r *AcceptSuggestionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordPaymentRequest struct {
	StaffID     string          `json:"staff_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Note        *string         `json:"note,omitempty"`
}

func (r *RecordPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "amount must be greater than zero"})
	}
	if _, ok := validator.IsValidDate(r.PaymentDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "payment_date", Message: "payment_date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaymentResponse struct {
	ID          string          `json:"id"`
	StaffID     string          `json:"staff_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Kind        salary.Kind     `json:"kind"`
	IncomeID    *string         `json:"income_id,omitempty"`
	Note        *string         `json:"note,omitempty"`
}

func NewPaymentResponse(p salary.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		StaffID:     p.StaffID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(time.DateOnly),
		Kind:        p.Kind,
		IncomeID:    p.IncomeID,
		Note:        p.Note,
	}
}

type RecordPaymentResponse struct {
	Payment        PaymentResponse `json:"payment"`
	AvailableAfter decimal.Decimal `json:"available_after"`
}

type AcceptSuggestionResponse struct {
	Payment    PaymentResponse    `json:"payment"`
	Suggestion SuggestionResponse `json:"suggestion"`
}

type ListPaymentsRequest struct {
	StaffID string
	From    string
	To      string
}
