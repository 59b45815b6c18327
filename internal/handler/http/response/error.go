package response

import (
	"errors"
	"net/http"

	"github.com/policlinic/clinic-backend-go/internal/domain/auth"
	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/payroll"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrStaffClaimMissing):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrRoleNotAllowed):
		Forbidden(w, err.Error())

	// Engine error kinds
	case errors.Is(err, period.ErrInvalidRange):
		Error(w, http.StatusBadRequest, "INVALID_RANGE", err.Error())
	case errors.Is(err, staff.ErrInvalidDoctor):
		Error(w, http.StatusBadRequest, "INVALID_DOCTOR", err.Error())
	case errors.Is(err, staff.ErrUnknownStaff):
		Error(w, http.StatusNotFound, "UNKNOWN_STAFF", err.Error())
	case errors.Is(err, payroll.ErrNotApplicable):
		Error(w, http.StatusForbidden, "NOT_APPLICABLE", err.Error())

	// Payroll rejections
	case errors.Is(err, payroll.ErrNoEarnings):
		Error(w, http.StatusConflict, "NO_EARNINGS", err.Error())
	case errors.Is(err, payroll.ErrSalaryAlreadyWithdrawn):
		Error(w, http.StatusConflict, "SALARY_ALREADY_WITHDRAWN", err.Error())
	case errors.Is(err, payroll.ErrInsufficientBalance):
		Error(w, http.StatusConflict, "INSUFFICIENT_BALANCE", err.Error())
	case errors.Is(err, payroll.ErrNothingToPay):
		Error(w, http.StatusConflict, "NOTHING_TO_PAY", err.Error())
	case errors.Is(err, salary.ErrLinkedToIncome):
		Conflict(w, err.Error())

	// Bad input the validators cannot catch
	case errors.Is(err, timesheet.ErrInvalidClock), errors.Is(err, income.ErrInvalidPaymentMethod):
		BadRequest(w, err.Error(), nil)

	// Not found
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Timesheet entry not found")
	case errors.Is(err, income.ErrIncomeNotFound):
		NotFound(w, "Income record not found")
	case errors.Is(err, income.ErrPatientNotFound):
		NotFound(w, "Patient not found")
	case errors.Is(err, expense.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, expense.ErrCategoryNotFound):
		NotFound(w, "Expense category not found")
	case errors.Is(err, salary.ErrPaymentNotFound):
		NotFound(w, "Salary payment not found")

	// Conflicts
	case errors.Is(err, expense.ErrCategoryExists):
		Conflict(w, "Expense category already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
