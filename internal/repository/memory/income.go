package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
)

type incomeRepository struct {
	store *Store
}

func NewIncomeRepository(store *Store) income.IncomeRepository {
	return &incomeRepository{store: store}
}

func (r *incomeRepository) Create(ctx context.Context, record income.Record) (income.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.patients[record.PatientID]
	if !ok {
		return income.Record{}, income.ErrPatientNotFound
	}
	record.PatientFirstName = p.FirstName
	record.PatientLastName = p.LastName
	record.CreatedAt = time.Now()
	r.store.income[record.ID] = record
	return record, nil
}

func (r *incomeRepository) GetByID(ctx context.Context, id string) (income.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.income[id]
	if !ok {
		return income.Record{}, income.ErrIncomeNotFound
	}
	return rec, nil
}

func (r *incomeRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.income[id]; !ok {
		return income.ErrIncomeNotFound
	}
	delete(r.store.income, id)
	return nil
}

func (r *incomeRepository) List(ctx context.Context, filter income.ListFilter) ([]income.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []income.Record
	for _, rec := range r.store.income {
		day := period.Day(rec.ServiceDate)
		if filter.From != nil && day.Before(period.Day(*filter.From)) {
			continue
		}
		if filter.To != nil && day.After(period.Day(*filter.To)) {
			continue
		}
		if filter.DoctorID != nil && rec.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Method != nil && rec.PaymentMethod != *filter.Method {
			continue
		}
		if filter.PatientSurname != nil &&
			!strings.Contains(strings.ToLower(rec.PatientLastName), strings.ToLower(*filter.PatientSurname)) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ServiceDate.Equal(out[j].ServiceDate) {
			return out[i].ServiceDate.Before(out[j].ServiceDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type patientRepository struct {
	store *Store
}

func NewPatientRepository(store *Store) income.PatientRepository {
	return &patientRepository{store: store}
}

func (r *patientRepository) GetByID(ctx context.Context, id string) (income.Patient, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.patients[id]
	if !ok {
		return income.Patient{}, income.ErrPatientNotFound
	}
	return p, nil
}

func (r *patientRepository) Create(ctx context.Context, patient income.Patient) (income.Patient, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	patient.CreatedAt = time.Now()
	r.store.patients[patient.ID] = patient
	return patient, nil
}
