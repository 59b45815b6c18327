package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/policlinic/clinic-backend-go/internal/pkg/database"
)

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

const timesheetColumns = `id, staff_id, work_date, start_time, end_time, note, created_at, updated_at`

func scanEntry(row pgx.Row) (timesheet.Entry, error) {
	var (
		e          timesheet.Entry
		start, end pgtype.Time
	)
	if err := row.Scan(&e.ID, &e.StaffID, &e.WorkDate, &start, &end, &e.Note, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return timesheet.Entry{}, err
	}
	e.Start = time.Duration(start.Microseconds) * time.Microsecond
	e.End = time.Duration(end.Microseconds) * time.Microsecond
	return e, nil
}

func clock(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO timesheet_entries (id, staff_id, work_date, start_time, end_time, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + timesheetColumns

	created, err := scanEntry(q.QueryRow(ctx, query,
		entry.ID, entry.StaffID, entry.WorkDate, clock(entry.Start), clock(entry.End), entry.Note,
	))
	if err != nil {
		return timesheet.Entry{}, fmt.Errorf("failed to create timesheet entry: %w", err)
	}
	return created, nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Entry, error) {
	if malformedID(id) {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	e, err := scanEntry(q.QueryRow(ctx, `SELECT `+timesheetColumns+` FROM timesheet_entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, fmt.Errorf("failed to get timesheet entry %s: %w", id, err)
	}
	return e, nil
}

// Update implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Update(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	if malformedID(entry.ID) {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheet_entries
		SET work_date = $2, start_time = $3, end_time = $4, note = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + timesheetColumns

	updated, err := scanEntry(q.QueryRow(ctx, query,
		entry.ID, entry.WorkDate, clock(entry.Start), clock(entry.End), entry.Note,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Entry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.Entry{}, fmt.Errorf("failed to update timesheet entry %s: %w", entry.ID, err)
	}
	return updated, nil
}

// Delete implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Delete(ctx context.Context, id string) error {
	if malformedID(id) {
		return timesheet.ErrEntryNotFound
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timesheet_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet entry %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

// ListByStaff implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListByStaff(ctx context.Context, staffID string, rng period.Range) ([]timesheet.Entry, error) {
	if malformedID(staffID) {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timesheetColumns + `
		FROM timesheet_entries
		WHERE staff_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date, start_time
	`

	rows, err := q.Query(ctx, query, staffID, rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}
	defer rows.Close()

	var entries []timesheet.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
