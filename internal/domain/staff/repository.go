package staff

import "context"

type StaffRepository interface {
	// GetByID returns the member whether active or not.
	GetByID(ctx context.Context, id string) (Member, error)
	List(ctx context.Context, filter ListFilter) ([]Member, error)
	Create(ctx context.Context, member Member) (Member, error)
	// LockForUpdate loads the member and holds its row lock until the surrounding
	// transaction ends. Outside a transaction it behaves like GetByID.
	LockForUpdate(ctx context.Context, id string) (Member, error)
}

type ListFilter struct {
	Role            *RoleName
	IncludeInactive bool
}
