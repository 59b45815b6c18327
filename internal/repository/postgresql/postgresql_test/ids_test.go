package postgresql_test

import (
	"context"
	"testing"

	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Malformed ids never reach the database, so these run without a connection.
func TestRepositories_MalformedIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	const bad = "not-a-uuid"

	staffRepo := postgresql.NewStaffRepository(nil)
	_, err := staffRepo.GetByID(ctx, bad)
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)
	_, err = staffRepo.LockForUpdate(ctx, bad)
	assert.ErrorIs(t, err, staff.ErrStaffNotFound)

	incomeRepo := postgresql.NewIncomeRepository(nil)
	_, err = incomeRepo.GetByID(ctx, bad)
	assert.ErrorIs(t, err, income.ErrIncomeNotFound)
	assert.ErrorIs(t, incomeRepo.Delete(ctx, bad), income.ErrIncomeNotFound)

	_, err = postgresql.NewPatientRepository(nil).GetByID(ctx, bad)
	assert.ErrorIs(t, err, income.ErrPatientNotFound)

	expenseRepo := postgresql.NewExpenseRepository(nil)
	_, err = expenseRepo.GetCategory(ctx, bad)
	assert.ErrorIs(t, err, expense.ErrCategoryNotFound)
	assert.ErrorIs(t, expenseRepo.Delete(ctx, bad), expense.ErrExpenseNotFound)

	salaryRepo := postgresql.NewSalaryRepository(nil)
	_, err = salaryRepo.GetByID(ctx, bad)
	assert.ErrorIs(t, err, salary.ErrPaymentNotFound)
	assert.ErrorIs(t, salaryRepo.Delete(ctx, bad), salary.ErrPaymentNotFound)
	assert.NoError(t, salaryRepo.DeleteByIncomeID(ctx, bad))

	timesheetRepo := postgresql.NewTimesheetRepository(nil)
	_, err = timesheetRepo.GetByID(ctx, bad)
	assert.ErrorIs(t, err, timesheet.ErrEntryNotFound)
	_, err = timesheetRepo.Update(ctx, timesheet.Entry{ID: bad})
	assert.ErrorIs(t, err, timesheet.ErrEntryNotFound)
	assert.ErrorIs(t, timesheetRepo.Delete(ctx, bad), timesheet.ErrEntryNotFound)
}

func TestRepositories_MalformedFilterIDListsNothing(t *testing.T) {
	ctx := context.Background()
	bad := "abc"
	r := period.Range{From: date("2024-06-01"), To: date("2024-06-30")}

	records, err := postgresql.NewIncomeRepository(nil).List(ctx, income.ListFilter{From: &r.From, To: &r.To, DoctorID: &bad})
	require.NoError(t, err)
	assert.Empty(t, records)

	payments, err := postgresql.NewSalaryRepository(nil).List(ctx, salary.ListFilter{StaffID: &bad})
	require.NoError(t, err)
	assert.Empty(t, payments)

	expenses, err := postgresql.NewExpenseRepository(nil).List(ctx, r, &bad)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	entries, err := postgresql.NewTimesheetRepository(nil).ListByStaff(ctx, bad, r)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
