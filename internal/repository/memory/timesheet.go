package memory

import (
	"context"
	"sort"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
)

type timesheetRepository struct {
	store *Store
}

func NewTimesheetRepository(store *Store) timesheet.TimesheetRepository {
	return &timesheetRepository{store: store}
}

func (r *timesheetRepository) Create(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	r.store.timesheets[entry.ID] = entry
	return entry, nil
}

func (r *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.timesheets[id]
	if !ok {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	return e, nil
}

func (r *timesheetRepository) Update(ctx context.Context, entry timesheet.Entry) (timesheet.Entry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.timesheets[entry.ID]; !ok {
		return timesheet.Entry{}, timesheet.ErrEntryNotFound
	}
	entry.UpdatedAt = time.Now()
	r.store.timesheets[entry.ID] = entry
	return entry, nil
}

func (r *timesheetRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.timesheets[id]; !ok {
		return timesheet.ErrEntryNotFound
	}
	delete(r.store.timesheets, id)
	return nil
}

func (r *timesheetRepository) ListByStaff(ctx context.Context, staffID string, rng period.Range) ([]timesheet.Entry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []timesheet.Entry
	for _, e := range r.store.timesheets {
		if e.StaffID == staffID && rng.Contains(e.WorkDate) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].WorkDate.Equal(out[j].WorkDate) {
			return out[i].WorkDate.Before(out[j].WorkDate)
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}
