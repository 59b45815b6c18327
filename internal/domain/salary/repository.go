package salary

import (
	"context"
	"time"
)

type SalaryRepository interface {
	Create(ctx context.Context, payment Payment) (Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	Delete(ctx context.Context, id string) error
	DeleteByIncomeID(ctx context.Context, incomeID string) error
	// List returns payments ordered by payment date.
	List(ctx context.Context, filter ListFilter) ([]Payment, error)

	CreateWithdrawalAudit(ctx context.Context, audit WithdrawalAudit) error
}

type ListFilter struct {
	StaffID *string
	From    *time.Time
	To      *time.Time
	Kind    *Kind
}
