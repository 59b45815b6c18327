package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/policlinic/clinic-backend-go/internal/domain/income"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
)

type incomeRepositoryImpl struct {
	db *database.DB
}

func NewIncomeRepository(db *database.DB) income.IncomeRepository {
	return &incomeRepositoryImpl{db: db}
}

const incomeSelect = `
	SELECT i.id, i.patient_id, p.first_name, p.last_name, i.doctor_id, i.amount,
		i.payment_method, i.service_date, i.note, i.created_at
	FROM income_records i
	JOIN patients p ON p.id = i.patient_id
`

func scanIncome(row pgx.Row) (income.Record, error) {
	var rec income.Record
	err := row.Scan(
		&rec.ID, &rec.PatientID, &rec.PatientFirstName, &rec.PatientLastName, &rec.DoctorID, &rec.Amount,
		&rec.PaymentMethod, &rec.ServiceDate, &rec.Note, &rec.CreatedAt,
	)
	return rec, err
}

// Create implements income.IncomeRepository.
func (r *incomeRepositoryImpl) Create(ctx context.Context, record income.Record) (income.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO income_records (id, patient_id, doctor_id, amount, payment_method, service_date, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.Exec(ctx, query,
		record.ID, record.PatientID, record.DoctorID, record.Amount, record.PaymentMethod, record.ServiceDate, record.Note,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation && pgErr.ConstraintName == "income_records_patient_id_fkey" {
			return income.Record{}, income.ErrPatientNotFound
		}
		return income.Record{}, fmt.Errorf("failed to insert income record: %w", err)
	}

	return r.GetByID(ctx, record.ID)
}

// GetByID implements income.IncomeRepository.
func (r *incomeRepositoryImpl) GetByID(ctx context.Context, id string) (income.Record, error) {
	if malformedID(id) {
		return income.Record{}, income.ErrIncomeNotFound
	}
	q := GetQuerier(ctx, r.db)

	rec, err := scanIncome(q.QueryRow(ctx, incomeSelect+` WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return income.Record{}, income.ErrIncomeNotFound
		}
		return income.Record{}, fmt.Errorf("failed to get income record %s: %w", id, err)
	}
	return rec, nil
}

// Delete implements income.IncomeRepository.
func (r *incomeRepositoryImpl) Delete(ctx context.Context, id string) error {
	if malformedID(id) {
		return income.ErrIncomeNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM income_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete income record %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return income.ErrIncomeNotFound
	}
	return nil
}

// List implements income.IncomeRepository.
func (r *incomeRepositoryImpl) List(ctx context.Context, filter income.ListFilter) ([]income.Record, error) {
	if malformedOptionalID(filter.DoctorID) {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := incomeSelect + `
		WHERE ($1::date IS NULL OR i.service_date >= $1)
			AND ($2::date IS NULL OR i.service_date <= $2)
			AND ($3::uuid IS NULL OR i.doctor_id = $3)
			AND ($4::text IS NULL OR i.payment_method = $4)
			AND ($5::text IS NULL OR strpos(lower(p.last_name), lower($5)) > 0)
		ORDER BY i.service_date, i.created_at
	`

	var method *string
	if filter.Method != nil {
		s := string(*filter.Method)
		method = &s
	}

	rows, err := q.Query(ctx, query, filter.From, filter.To, filter.DoctorID, method, filter.PatientSurname)
	if err != nil {
		return nil, fmt.Errorf("failed to list income records: %w", err)
	}
	defer rows.Close()

	var records []income.Record
	for rows.Next() {
		rec, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

type patientRepositoryImpl struct {
	db *database.DB
}

func NewPatientRepository(db *database.DB) income.PatientRepository {
	return &patientRepositoryImpl{db: db}
}

// GetByID implements income.PatientRepository.
func (r *patientRepositoryImpl) GetByID(ctx context.Context, id string) (income.Patient, error) {
	if malformedID(id) {
		return income.Patient{}, income.ErrPatientNotFound
	}
	q := GetQuerier(ctx, r.db)

	var p income.Patient
	err := q.QueryRow(ctx, `SELECT id, first_name, last_name, created_at FROM patients WHERE id = $1`, id).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return income.Patient{}, income.ErrPatientNotFound
		}
		return income.Patient{}, fmt.Errorf("failed to get patient %s: %w", id, err)
	}
	return p, nil
}

// Create implements income.PatientRepository.
func (r *patientRepositoryImpl) Create(ctx context.Context, patient income.Patient) (income.Patient, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO patients (id, first_name, last_name)
		VALUES ($1, $2, $3)
		RETURNING id, first_name, last_name, created_at
	`

	var created income.Patient
	err := q.QueryRow(ctx, query, patient.ID, patient.FirstName, patient.LastName).
		Scan(&created.ID, &created.FirstName, &created.LastName, &created.CreatedAt)
	if err != nil {
		return income.Patient{}, fmt.Errorf("failed to create patient: %w", err)
	}
	return created, nil
}
