package income

import "context"

type IncomeService interface {
	// RecordIncome stores a patient payment and, when the doctor earns commission,
	// the matching commission disbursement in the same transaction.
	RecordIncome(ctx context.Context, req CreateIncomeRequest) (IncomeResponse, error)

	// DeleteIncome removes the record together with its commission disbursement.
	DeleteIncome(ctx context.Context, id string) error

	List(ctx context.Context, req ListIncomeRequest) ([]IncomeResponse, error)
}
