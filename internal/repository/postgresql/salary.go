package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/policlinic/clinic-backend-go/internal/domain/salary"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const paymentColumns = `id, staff_id, amount, payment_date, kind, income_id, note, created_at`

func scanPayment(row pgx.Row) (salary.Payment, error) {
	var p salary.Payment
	err := row.Scan(&p.ID, &p.StaffID, &p.Amount, &p.PaymentDate, &p.Kind, &p.IncomeID, &p.Note, &p.CreatedAt)
	return p, err
}

// Create implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, payment salary.Payment) (salary.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_payments (id, staff_id, amount, payment_date, kind, income_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + paymentColumns

	created, err := scanPayment(q.QueryRow(ctx, query,
		payment.ID, payment.StaffID, payment.Amount, payment.PaymentDate, string(payment.Kind), payment.IncomeID, payment.Note,
	))
	if err != nil {
		return salary.Payment{}, fmt.Errorf("failed to create salary payment: %w", err)
	}
	return created, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Payment, error) {
	if malformedID(id) {
		return salary.Payment{}, salary.ErrPaymentNotFound
	}
	q := GetQuerier(ctx, r.db)

	p, err := scanPayment(q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM salary_payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Payment{}, salary.ErrPaymentNotFound
		}
		return salary.Payment{}, fmt.Errorf("failed to get salary payment %s: %w", id, err)
	}
	return p, nil
}

// Delete implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Delete(ctx context.Context, id string) error {
	if malformedID(id) {
		return salary.ErrPaymentNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salary_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary payment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrPaymentNotFound
	}
	return nil
}

// DeleteByIncomeID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) DeleteByIncomeID(ctx context.Context, incomeID string) error {
	if malformedID(incomeID) {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_payments WHERE income_id = $1`, incomeID); err != nil {
		return fmt.Errorf("failed to delete payments for income %s: %w", incomeID, err)
	}
	return nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.ListFilter) ([]salary.Payment, error) {
	if malformedOptionalID(filter.StaffID) {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + paymentColumns + `
		FROM salary_payments
		WHERE ($1::uuid IS NULL OR staff_id = $1)
			AND ($2::date IS NULL OR payment_date >= $2)
			AND ($3::date IS NULL OR payment_date <= $3)
			AND ($4::text IS NULL OR kind = $4)
		ORDER BY payment_date, created_at
	`

	var kind *string
	if filter.Kind != nil {
		s := string(*filter.Kind)
		kind = &s
	}

	rows, err := q.Query(ctx, query, filter.StaffID, filter.From, filter.To, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary payments: %w", err)
	}
	defer rows.Close()

	var payments []salary.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

// CreateWithdrawalAudit implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) CreateWithdrawalAudit(ctx context.Context, audit salary.WithdrawalAudit) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO withdrawal_audits (id, staff_id, requested_amount, earned, already_paid, available,
			status, period_start, period_end, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := q.Exec(ctx, query,
		audit.ID, audit.StaffID, audit.RequestedAmount, audit.Earned, audit.AlreadyPaid, audit.Available,
		string(audit.Status), audit.PeriodStart, audit.PeriodEnd, audit.PaymentID,
	)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal audit: %w", err)
	}
	return nil
}
