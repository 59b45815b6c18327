package income

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// Record is a patient payment attributed to a doctor. Records are never edited; callers
// delete and recreate instead.
type Record struct {
	ID               string
	PatientID        string
	PatientFirstName *string
	PatientLastName  string
	DoctorID         string
	Amount           decimal.Decimal
	PaymentMethod    PaymentMethod
	ServiceDate      time.Time
	Note             *string
	CreatedAt        time.Time
}

type Patient struct {
	ID        string
	FirstName *string
	LastName  string
	CreatedAt time.Time
}
