package expense

import (
	"context"
	"testing"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
	"github.com/policlinic/clinic-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpenseService() expense.ExpenseService {
	return NewExpenseService(memory.NewExpenseRepository(memory.NewStore()))
}

func TestExpenseService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService()

	// Arrange
	supplies, err := svc.CreateCategory(ctx, expense.CreateCategoryRequest{Name: " Supplies "})
	require.NoError(t, err)
	assert.Equal(t, "Supplies", supplies.Name)
	utilities, err := svc.CreateCategory(ctx, expense.CreateCategoryRequest{Name: "Utilities"})
	require.NoError(t, err)

	for _, req := range []expense.CreateExpenseRequest{
		{CategoryID: supplies.ID, Amount: decimal.RequireFromString("120.456"), ExpenseDate: "2024-05-03"},
		{CategoryID: utilities.ID, Amount: decimal.NewFromInt(80), ExpenseDate: "2024-05-20"},
		{CategoryID: supplies.ID, Amount: decimal.NewFromInt(10), ExpenseDate: "2024-06-01"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	// Act
	all, err := svc.List(ctx, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)
	onlySupplies, err := svc.List(ctx, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), &supplies.ID)
	require.NoError(t, err)

	// Assert
	require.Len(t, all, 2)
	assert.True(t, decimal.RequireFromString("120.46").Equal(all[0].Amount))
	assert.Equal(t, "Supplies", all[0].CategoryName)
	assert.Len(t, onlySupplies, 2)
}

func TestExpenseService_Create_UnknownCategory(t *testing.T) {
	svc := newExpenseService()

	_, err := svc.Create(context.Background(), expense.CreateExpenseRequest{
		CategoryID:  "missing",
		Amount:      decimal.NewFromInt(10),
		ExpenseDate: "2024-05-03",
	})

	assert.ErrorIs(t, err, expense.ErrCategoryNotFound)
}

func TestExpenseService_Create_SubCentAmountRejected(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService()
	supplies, err := svc.CreateCategory(ctx, expense.CreateCategoryRequest{Name: "Supplies"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, expense.CreateExpenseRequest{
		CategoryID:  supplies.ID,
		Amount:      decimal.RequireFromString("0.004"),
		ExpenseDate: "2024-05-03",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, "amount", validationErrs[0].Field)
}

func TestExpenseService_CreateCategory_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService()
	_, err := svc.CreateCategory(ctx, expense.CreateCategoryRequest{Name: "Rent"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, expense.CreateCategoryRequest{Name: "rent"})

	assert.ErrorIs(t, err, expense.ErrCategoryExists)
}

func TestExpenseService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newExpenseService()
	c, err := svc.CreateCategory(ctx, expense.CreateCategoryRequest{Name: "Rent"})
	require.NoError(t, err)
	created, err := svc.Create(ctx, expense.CreateExpenseRequest{CategoryID: c.ID, Amount: decimal.NewFromInt(10), ExpenseDate: "2024-05-03"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), expense.ErrExpenseNotFound)
}

func TestExpenseService_List_InvertedRange(t *testing.T) {
	svc := newExpenseService()

	_, err := svc.List(context.Background(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), nil)

	assert.ErrorIs(t, err, period.ErrInvalidRange)
}
