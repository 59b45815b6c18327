// Package memory is an in-process record store with the same contracts as the
// PostgreSQL repositories. Transactions are serialised by a single lock and are not
// rolled back on error.
package memory

import (
	"context"
	"sync"

	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
)

type Store struct {
	mu sync.RWMutex
	// txMu is held for the whole of a transaction.
	txMu sync.Mutex

	staff      map[string]staff.Member
	patients   map[string]income.Patient
	income     map[string]income.Record
	timesheets map[string]timesheet.Entry
	expenses   map[string]expense.Record
	categories map[string]expense.Category
	payments   map[string]salary.Payment
	audits     []salary.WithdrawalAudit
	settings   map[string]string
}

func NewStore() *Store {
	return &Store{
		staff:      make(map[string]staff.Member),
		patients:   make(map[string]income.Patient),
		income:     make(map[string]income.Record),
		timesheets: make(map[string]timesheet.Entry),
		expenses:   make(map[string]expense.Record),
		categories: make(map[string]expense.Category),
		payments:   make(map[string]salary.Payment),
		settings:   make(map[string]string),
	}
}

type txKey struct{}

// WithinTransaction runs fn while holding the store-wide transaction lock. Nested calls
// reuse the outer transaction.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(bool); ok {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

// WithdrawalAudits returns a copy of the recorded withdrawal audit rows.
func (s *Store) WithdrawalAudits() []salary.WithdrawalAudit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]salary.WithdrawalAudit, len(s.audits))
	copy(out, s.audits)
	return out
}
