package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/policlinic/clinic-backend-go/internal/domain/expense"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
)

type expenseRepositoryImpl struct {
	db *database.DB
}

func NewExpenseRepository(db *database.DB) expense.ExpenseRepository {
	return &expenseRepositoryImpl{db: db}
}

// Create implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Create(ctx context.Context, record expense.Record) (expense.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO expenses (id, category_id, amount, expense_date, vendor, description)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, category_id, amount, expense_date, vendor, description, created_at
		)
		SELECT i.id, i.category_id, c.name, i.amount, i.expense_date, i.vendor, i.description, i.created_at
		FROM inserted i
		JOIN expense_categories c ON c.id = i.category_id
	`

	var created expense.Record
	err := q.QueryRow(ctx, query,
		record.ID, record.CategoryID, record.Amount, record.ExpenseDate, record.Vendor, record.Description,
	).Scan(
		&created.ID, &created.CategoryID, &created.CategoryName, &created.Amount, &created.ExpenseDate,
		&created.Vendor, &created.Description, &created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return expense.Record{}, expense.ErrCategoryNotFound
		}
		return expense.Record{}, fmt.Errorf("failed to create expense: %w", err)
	}
	return created, nil
}

// Delete implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) Delete(ctx context.Context, id string) error {
	if malformedID(id) {
		return expense.ErrExpenseNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return expense.ErrExpenseNotFound
	}
	return nil
}

// List implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) List(ctx context.Context, rng period.Range, categoryID *string) ([]expense.Record, error) {
	if malformedOptionalID(categoryID) {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id, e.category_id, c.name, e.amount, e.expense_date, e.vendor, e.description, e.created_at
		FROM expenses e
		JOIN expense_categories c ON c.id = e.category_id
		WHERE e.expense_date BETWEEN $1 AND $2
			AND ($3::uuid IS NULL OR e.category_id = $3)
		ORDER BY e.expense_date, e.created_at
	`

	rows, err := q.Query(ctx, query, rng.From, rng.To, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var records []expense.Record
	for rows.Next() {
		var rec expense.Record
		if err := rows.Scan(
			&rec.ID, &rec.CategoryID, &rec.CategoryName, &rec.Amount, &rec.ExpenseDate,
			&rec.Vendor, &rec.Description, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateCategory implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) CreateCategory(ctx context.Context, category expense.Category) (expense.Category, error) {
	q := GetQuerier(ctx, r.db)

	var created expense.Category
	err := q.QueryRow(ctx, `INSERT INTO expense_categories (id, name) VALUES ($1, $2) RETURNING id, name`,
		category.ID, category.Name,
	).Scan(&created.ID, &created.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return expense.Category{}, expense.ErrCategoryExists
		}
		return expense.Category{}, fmt.Errorf("failed to create expense category: %w", err)
	}
	return created, nil
}

// GetCategory implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) GetCategory(ctx context.Context, id string) (expense.Category, error) {
	if malformedID(id) {
		return expense.Category{}, expense.ErrCategoryNotFound
	}
	q := GetQuerier(ctx, r.db)

	var c expense.Category
	err := q.QueryRow(ctx, `SELECT id, name FROM expense_categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return expense.Category{}, expense.ErrCategoryNotFound
		}
		return expense.Category{}, fmt.Errorf("failed to get expense category %s: %w", id, err)
	}
	return c, nil
}

// ListCategories implements expense.ExpenseRepository.
func (r *expenseRepositoryImpl) ListCategories(ctx context.Context) ([]expense.Category, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name FROM expense_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense categories: %w", err)
	}
	defer rows.Close()

	var categories []expense.Category
	for rows.Next() {
		var c expense.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
