package expense

import (
	"context"
	"time"
)

type ExpenseService interface {
	Create(ctx context.Context, req CreateExpenseRequest) (ExpenseResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, from, to time.Time, categoryID *string) ([]ExpenseResponse, error)

	CreateCategory(ctx context.Context, req CreateCategoryRequest) (CategoryResponse, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
}
