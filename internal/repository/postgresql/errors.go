package postgresql

import "github.com/policlinic/clinic-backend-go/internal/pkg/validator"

// PostgreSQL SQLSTATE codes the repositories translate into domain errors.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// malformedID reports whether id can never match a UUID key column. Lookups
// short-circuit to their not-found error instead of failing with 22P02.
func malformedID(id string) bool {
	return !validator.IsValidUUID(id)
}

func malformedOptionalID(id *string) bool {
	return id != nil && malformedID(*id)
}
