package expense

import (
	"time"

	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateExpenseRequest struct {
	CategoryID  string          `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate string          `json:"expense_date"`
	Vendor      *string         `json:"vendor,omitempty"`
	Description *string         `json:"description,omitempty"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type ExpenseResponse struct {
	ID           string          `json:"id"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	ExpenseDate  string          `json:"expense_date"`
	Vendor       *string         `json:"vendor,omitempty"`
	Description  *string         `json:"description,omitempty"`
}

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewExpenseResponse(r Record) ExpenseResponse {
	return ExpenseResponse{
		ID:           r.ID,
		CategoryID:   r.CategoryID,
		CategoryName: r.CategoryName,
		Amount:       r.Amount,
		ExpenseDate:  r.ExpenseDate.Format(time.DateOnly),
		Vendor:       r.Vendor,
		Description:  r.Description,
	}
}

func (r *CreateExpenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CategoryID) {
		errs = append(errs, validator.ValidationError{Field: "category_id", Message: "category_id is required"})
	}
	if !validator.IsPositiveAmount(r.Amount) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: ErrInvalidAmount.Error()})
	}
	if _, ok := validator.IsValidDate(r.ExpenseDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "expense_date", Message: "expense_date must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateCategoryRequest) Validate() error {
	if validator.IsEmpty(r.Name) {
		return validator.ValidationErrors{{Field: "name", Message: "name is required"}}
	}
	return nil
}
