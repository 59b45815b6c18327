package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type staffRepositoryImpl struct {
	db *database.DB
}

func NewStaffRepository(db *database.DB) staff.StaffRepository {
	return &staffRepositoryImpl{db: db}
}

const staffColumns = `id, first_name, last_name, email, role, base_salary, commission_rate,
	is_active, employment_start_date, created_at, updated_at`

func scanStaff(row pgx.Row) (staff.Member, error) {
	var (
		m              staff.Member
		roleName       string
		baseSalary     decimal.Decimal
		commissionRate decimal.Decimal
	)
	err := row.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &roleName, &baseSalary, &commissionRate,
		&m.IsActive, &m.EmploymentStartDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return staff.Member{}, err
	}

	m.Role, err = staff.RoleFromColumns(roleName, baseSalary, commissionRate)
	if err != nil {
		return staff.Member{}, fmt.Errorf("staff %s has invalid role columns: %w", m.ID, err)
	}
	return m, nil
}

// GetByID implements staff.StaffRepository.
func (r *staffRepositoryImpl) GetByID(ctx context.Context, id string) (staff.Member, error) {
	if malformedID(id) {
		return staff.Member{}, staff.ErrStaffNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1`

	m, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Member{}, staff.ErrStaffNotFound
		}
		return staff.Member{}, fmt.Errorf("failed to get staff by id %s: %w", id, err)
	}
	return m, nil
}

// LockForUpdate implements staff.StaffRepository.
func (r *staffRepositoryImpl) LockForUpdate(ctx context.Context, id string) (staff.Member, error) {
	if malformedID(id) {
		return staff.Member{}, staff.ErrStaffNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + staffColumns + ` FROM staff WHERE id = $1 FOR UPDATE`

	m, err := scanStaff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Member{}, staff.ErrStaffNotFound
		}
		return staff.Member{}, fmt.Errorf("failed to lock staff %s: %w", id, err)
	}
	return m, nil
}

// List implements staff.StaffRepository.
func (r *staffRepositoryImpl) List(ctx context.Context, filter staff.ListFilter) ([]staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + staffColumns + `
		FROM staff
		WHERE ($1::text IS NULL OR role = $1)
			AND ($2 OR is_active)
		ORDER BY last_name, first_name
	`

	var role *string
	if filter.Role != nil {
		s := string(*filter.Role)
		role = &s
	}

	rows, err := q.Query(ctx, query, role, filter.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var members []staff.Member
	for rows.Next() {
		m, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

// Create implements staff.StaffRepository.
func (r *staffRepositoryImpl) Create(ctx context.Context, member staff.Member) (staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	roleName, baseSalary, commissionRate := staff.RoleColumns(member.Role)
	if roleName == "" {
		return staff.Member{}, staff.ErrInvalidRole
	}

	query := `
		INSERT INTO staff (id, first_name, last_name, email, role, base_salary, commission_rate,
			is_active, employment_start_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, CURRENT_DATE))
		RETURNING ` + staffColumns

	var startDate any
	if !member.EmploymentStartDate.IsZero() {
		startDate = member.EmploymentStartDate
	}

	created, err := scanStaff(q.QueryRow(ctx, query,
		member.ID, member.FirstName, member.LastName, member.Email, roleName, baseSalary, commissionRate,
		member.IsActive, startDate,
	))
	if err != nil {
		return staff.Member{}, fmt.Errorf("failed to create staff: %w", err)
	}
	return created, nil
}
