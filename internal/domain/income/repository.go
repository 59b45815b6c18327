package income

import (
	"context"
	"time"
)

type IncomeRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Delete(ctx context.Context, id string) error
	// List returns records ordered by service date, then creation time.
	List(ctx context.Context, filter ListFilter) ([]Record, error)
}

type PatientRepository interface {
	GetByID(ctx context.Context, id string) (Patient, error)
	Create(ctx context.Context, patient Patient) (Patient, error)
}

type ListFilter struct {
	From     *time.Time
	To       *time.Time
	DoctorID *string
	Method   *PaymentMethod
	// PatientSurname matches a case-insensitive substring of the patient last name.
	PatientSurname *string
}
