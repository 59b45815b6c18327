package payroll

import (
	"context"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

type PayrollService interface {
	// SuggestPayroll computes what is still owed to a non-doctor for the period.
	SuggestPayroll(ctx context.Context, staffID string, from, to time.Time) (Suggestion, error)

	// AcceptSuggestion recomputes the suggestion and records it as a payment while the
	// staff record is locked.
	AcceptSuggestion(ctx context.Context, req AcceptSuggestionRequest) (AcceptSuggestionResponse, error)

	// RecordPayment records a manual disbursement checked against the month-to-date cycle.
	RecordPayment(ctx context.Context, req RecordPaymentRequest) (RecordPaymentResponse, error)

	ListPayments(ctx context.Context, req ListPaymentsRequest) ([]PaymentResponse, error)
	DeletePayment(ctx context.Context, id string) error

	// PeriodPay is the gross pay a non-doctor accrues over r, before netting payments.
	PeriodPay(ctx context.Context, member staff.Member, r period.Range) (decimal.Decimal, error)
}
