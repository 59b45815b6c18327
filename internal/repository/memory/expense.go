package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
)

type expenseRepository struct {
	store *Store
}

func NewExpenseRepository(store *Store) expense.ExpenseRepository {
	return &expenseRepository{store: store}
}

func (r *expenseRepository) Create(ctx context.Context, record expense.Record) (expense.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, ok := r.store.categories[record.CategoryID]
	if !ok {
		return expense.Record{}, expense.ErrCategoryNotFound
	}
	record.CategoryName = c.Name
	record.CreatedAt = time.Now()
	r.store.expenses[record.ID] = record
	return record, nil
}

func (r *expenseRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.expenses[id]; !ok {
		return expense.ErrExpenseNotFound
	}
	delete(r.store.expenses, id)
	return nil
}

func (r *expenseRepository) List(ctx context.Context, rng period.Range, categoryID *string) ([]expense.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []expense.Record
	for _, rec := range r.store.expenses {
		if !rng.Contains(rec.ExpenseDate) {
			continue
		}
		if categoryID != nil && rec.CategoryID != *categoryID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpenseDate.Before(out[j].ExpenseDate) })
	return out, nil
}

func (r *expenseRepository) CreateCategory(ctx context.Context, category expense.Category) (expense.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, c := range r.store.categories {
		if strings.EqualFold(c.Name, category.Name) {
			return expense.Category{}, expense.ErrCategoryExists
		}
	}
	r.store.categories[category.ID] = category
	return category, nil
}

func (r *expenseRepository) GetCategory(ctx context.Context, id string) (expense.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.categories[id]
	if !ok {
		return expense.Category{}, expense.ErrCategoryNotFound
	}
	return c, nil
}

func (r *expenseRepository) ListCategories(ctx context.Context) ([]expense.Category, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]expense.Category, 0, len(r.store.categories))
	for _, c := range r.store.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
