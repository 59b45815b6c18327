package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
)

type ExpenseServiceImpl struct {
	expenseRepo expense.ExpenseRepository
}

func NewExpenseService(expenseRepo expense.ExpenseRepository) expense.ExpenseService {
	return &ExpenseServiceImpl{expenseRepo: expenseRepo}
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, req expense.CreateExpenseRequest) (expense.ExpenseResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.ExpenseResponse{}, err
	}
	if _, err := s.expenseRepo.GetCategory(ctx, req.CategoryID); err != nil {
		return expense.ExpenseResponse{}, err
	}
	expenseDate, _ := time.Parse(time.DateOnly, req.ExpenseDate)

	created, err := s.expenseRepo.Create(ctx, expense.Record{
		ID:          uuid.NewString(),
		CategoryID:  req.CategoryID,
		Amount:      req.Amount.Round(2),
		ExpenseDate: expenseDate,
		Vendor:      req.Vendor,
		Description: req.Description,
	})
	if err != nil {
		return expense.ExpenseResponse{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense.NewExpenseResponse(created), nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string) error {
	return s.expenseRepo.Delete(ctx, id)
}

func (s *ExpenseServiceImpl) List(ctx context.Context, from, to time.Time, categoryID *string) ([]expense.ExpenseResponse, error) {
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}

	records, err := s.expenseRepo.List(ctx, r, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	out := make([]expense.ExpenseResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, expense.NewExpenseResponse(rec))
	}
	return out, nil
}

func (s *ExpenseServiceImpl) CreateCategory(ctx context.Context, req expense.CreateCategoryRequest) (expense.CategoryResponse, error) {
	if err := req.Validate(); err != nil {
		return expense.CategoryResponse{}, err
	}

	c, err := s.expenseRepo.CreateCategory(ctx, expense.Category{
		ID:   uuid.NewString(),
		Name: strings.TrimSpace(req.Name),
	})
	if err != nil {
		return expense.CategoryResponse{}, err
	}
	return expense.CategoryResponse{ID: c.ID, Name: c.Name}, nil
}

func (s *ExpenseServiceImpl) ListCategories(ctx context.Context) ([]expense.CategoryResponse, error) {
	categories, err := s.expenseRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}

	out := make([]expense.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, expense.CategoryResponse{ID: c.ID, Name: c.Name})
	}
	return out, nil
}
