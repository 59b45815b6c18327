package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

type TimesheetServiceImpl struct {
	timesheetRepo timesheet.TimesheetRepository
	staffRepo     staff.StaffRepository
	calculator    Calculator
	logger        *slog.Logger
}

func NewTimesheetService(
	timesheetRepo timesheet.TimesheetRepository,
	staffRepo staff.StaffRepository,
	calculator Calculator,
	logger *slog.Logger,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		timesheetRepo: timesheetRepo,
		staffRepo:     staffRepo,
		calculator:    calculator,
		logger:        logger,
	}
}

// HourlyRate is the rate the calculator applies for a role. Administrators are paid a
// fixed salary, so their hours carry no pay of their own.
func HourlyRate(role staff.Role) decimal.Decimal {
	switch r := role.(type) {
	case staff.Assistant:
		return r.HourlyRate
	case staff.Administrator, staff.Doctor:
		return decimal.Zero
	}
	return decimal.Zero
}

func (s *TimesheetServiceImpl) ComputeHours(ctx context.Context, staffID string, from, to time.Time) ([]timesheet.DailyHours, error) {
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}

	member, err := s.timesheetStaff(ctx, staffID, false)
	if err != nil {
		return nil, err
	}

	entries, err := s.timesheetRepo.ListByStaff(ctx, member.ID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}

	return s.calculator.Daily(entries, HourlyRate(member.Role)), nil
}

func (s *TimesheetServiceImpl) Create(ctx context.Context, req timesheet.CreateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	member, err := s.timesheetStaff(ctx, req.StaffID, true)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	workDate, _ := time.Parse(time.DateOnly, req.WorkDate)
	start, end, err := parseShift(req.StartTime, req.EndTime)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	created, err := s.timesheetRepo.Create(ctx, timesheet.Entry{
		ID:       uuid.NewString(),
		StaffID:  member.ID,
		WorkDate: workDate,
		Start:    start,
		End:      end,
		Note:     req.Note,
	})
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to create timesheet entry: %w", err)
	}

	s.logger.InfoContext(ctx, "timesheet entry created",
		slog.String("entry_id", created.ID),
		slog.String("staff_id", created.StaffID),
		slog.String("work_date", req.WorkDate),
		slog.String("hours", created.Hours().String()),
	)

	return timesheet.NewEntryResponse(created), nil
}

func (s *TimesheetServiceImpl) Update(ctx context.Context, id string, req timesheet.UpdateEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	entry, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	before := entry

	if req.WorkDate != nil {
		entry.WorkDate, _ = time.Parse(time.DateOnly, *req.WorkDate)
	}
	if req.StartTime != nil {
		entry.Start, _ = timesheet.ParseClock(*req.StartTime)
	}
	if req.EndTime != nil {
		entry.End, _ = timesheet.ParseClock(*req.EndTime)
	}
	if req.Note != nil {
		entry.Note = req.Note
	}
	if entry.End <= entry.Start {
		return timesheet.EntryResponse{}, timesheet.ErrEndBeforeStart
	}

	updated, err := s.timesheetRepo.Update(ctx, entry)
	if err != nil {
		return timesheet.EntryResponse{}, fmt.Errorf("failed to update timesheet entry: %w", err)
	}

	s.logger.InfoContext(ctx, "timesheet entry updated",
		slog.String("entry_id", updated.ID),
		slog.String("staff_id", updated.StaffID),
		slog.String("hours_before", before.Hours().String()),
		slog.String("hours_after", updated.Hours().String()),
	)

	return timesheet.NewEntryResponse(updated), nil
}

func (s *TimesheetServiceImpl) Delete(ctx context.Context, id string) error {
	entry, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.timesheetRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete timesheet entry: %w", err)
	}

	s.logger.InfoContext(ctx, "timesheet entry deleted",
		slog.String("entry_id", entry.ID),
		slog.String("staff_id", entry.StaffID),
		slog.String("hours", entry.Hours().String()),
	)
	return nil
}

func (s *TimesheetServiceImpl) List(ctx context.Context, staffID string, from, to time.Time) ([]timesheet.EntryResponse, error) {
	r, err := period.New(from, to)
	if err != nil {
		return nil, err
	}

	member, err := s.timesheetStaff(ctx, staffID, false)
	if err != nil {
		return nil, err
	}

	entries, err := s.timesheetRepo.ListByStaff(ctx, member.ID, r)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheet entries: %w", err)
	}

	out := make([]timesheet.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, timesheet.NewEntryResponse(e))
	}
	return out, nil
}

// timesheetStaff resolves a timesheet-eligible staff member. Doctors are never eligible.
// New entries additionally require an active member.
func (s *TimesheetServiceImpl) timesheetStaff(ctx context.Context, staffID string, requireActive bool) (staff.Member, error) {
	member, err := s.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return staff.Member{}, staff.ErrUnknownStaff
		}
		return staff.Member{}, fmt.Errorf("failed to get staff member: %w", err)
	}
	if member.IsDoctor() {
		return staff.Member{}, fmt.Errorf("%w: doctors do not keep timesheets", staff.ErrUnknownStaff)
	}
	if requireActive && !member.IsActive {
		return staff.Member{}, fmt.Errorf("%w: staff member is inactive", staff.ErrUnknownStaff)
	}
	return member, nil
}

func parseShift(startStr, endStr string) (time.Duration, time.Duration, error) {
	start, err := timesheet.ParseClock(startStr)
	if err != nil {
		return 0, 0, err
	}
	end, err := timesheet.ParseClock(endStr)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		return 0, 0, timesheet.ErrEndBeforeStart
	}
	return start, end, nil
}
