package timesheet

import (
	"context"
	"time"
)

type TimesheetService interface {
	// ComputeHours splits the staff member's worked time per day into regular and overtime hours.
	ComputeHours(ctx context.Context, staffID string, from, to time.Time) ([]DailyHours, error)

	Create(ctx context.Context, req CreateEntryRequest) (EntryResponse, error)
	Update(ctx context.Context, id string, req UpdateEntryRequest) (EntryResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, staffID string, from, to time.Time) ([]EntryResponse, error)
}
