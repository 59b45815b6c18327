package timesheet

import (
	"context"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
)

type TimesheetRepository interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id string) (Entry, error)
	Update(ctx context.Context, entry Entry) (Entry, error)
	Delete(ctx context.Context, id string) error
	// ListByStaff returns the staff member's entries in range ordered by date and start time.
	ListByStaff(ctx context.Context, staffID string, r period.Range) ([]Entry, error)
}
