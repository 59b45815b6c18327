package expense

import (
	"context"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
)

type ExpenseRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, r period.Range, categoryID *string) ([]Record, error)

	CreateCategory(ctx context.Context, category Category) (Category, error)
	GetCategory(ctx context.Context, id string) (Category, error)
	ListCategories(ctx context.Context) ([]Category, error)
}
