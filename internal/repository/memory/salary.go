package memory

import (
	"context"
	"sort"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
)

type salaryRepository struct {
	store *Store
}

func NewSalaryRepository(store *Store) salary.SalaryRepository {
	return &salaryRepository{store: store}
}

func (r *salaryRepository) Create(ctx context.Context, payment salary.Payment) (salary.Payment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	payment.CreatedAt = time.Now()
	r.store.payments[payment.ID] = payment
	return payment, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.payments[id]
	if !ok {
		return salary.Payment{}, salary.ErrPaymentNotFound
	}
	return p, nil
}

func (r *salaryRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.payments[id]; !ok {
		return salary.ErrPaymentNotFound
	}
	delete(r.store.payments, id)
	return nil
}

func (r *salaryRepository) DeleteByIncomeID(ctx context.Context, incomeID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, p := range r.store.payments {
		if p.IncomeID != nil && *p.IncomeID == incomeID {
			delete(r.store.payments, id)
		}
	}
	return nil
}

func (r *salaryRepository) List(ctx context.Context, filter salary.ListFilter) ([]salary.Payment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []salary.Payment
	for _, p := range r.store.payments {
		day := period.Day(p.PaymentDate)
		if filter.StaffID != nil && p.StaffID != *filter.StaffID {
			continue
		}
		if filter.From != nil && day.Before(period.Day(*filter.From)) {
			continue
		}
		if filter.To != nil && day.After(period.Day(*filter.To)) {
			continue
		}
		if filter.Kind != nil && p.Kind != *filter.Kind {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.Before(out[j].PaymentDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *salaryRepository) CreateWithdrawalAudit(ctx context.Context, audit salary.WithdrawalAudit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	audit.CreatedAt = time.Now()
	r.store.audits = append(r.store.audits, audit)
	return nil
}
