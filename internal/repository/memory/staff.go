package memory

import (
	"context"
	"sort"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
)

type staffRepository struct {
	store *Store
}

func NewStaffRepository(store *Store) staff.StaffRepository {
	return &staffRepository{store: store}
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (staff.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.staff[id]
	if !ok {
		return staff.Member{}, staff.ErrStaffNotFound
	}
	return m, nil
}

func (r *staffRepository) List(ctx context.Context, filter staff.ListFilter) ([]staff.Member, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []staff.Member
	for _, m := range r.store.staff {
		if !filter.IncludeInactive && !m.IsActive {
			continue
		}
		if filter.Role != nil && m.Role.Name() != *filter.Role {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (r *staffRepository) Create(ctx context.Context, member staff.Member) (staff.Member, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	r.store.staff[member.ID] = member
	return member, nil
}

// LockForUpdate needs no row lock here: the transaction lock already serialises writers.
func (r *staffRepository) LockForUpdate(ctx context.Context, id string) (staff.Member, error) {
	return r.GetByID(ctx, id)
}
