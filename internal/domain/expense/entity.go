package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Record struct {
	ID           string
	CategoryID   string
	CategoryName string
	Amount       decimal.Decimal
	ExpenseDate  time.Time
	Vendor       *string
	Description  *string
	CreatedAt    time.Time
}

type Category struct {
	ID   string
	Name string
}
