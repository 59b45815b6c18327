package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
)

// rangeParams reads the required from and to query parameters.
func rangeParams(r *http.Request) (period.Range, error) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")

	var errs validator.ValidationErrors
	if validator.IsEmpty(from) {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "from is required"})
	}
	if validator.IsEmpty(to) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "to is required"})
	}
	if len(errs) > 0 {
		return period.Range{}, errs
	}

	return period.Parse(from, to)
}

// optionalDate parses a YYYY-MM-DD query parameter, returning nil when it is absent.
func optionalDate(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(period.DateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s date %q", period.ErrInvalidRange, key, v)
	}
	return &d, nil
}

func requiredQuery(r *http.Request, key string) (string, error) {
	v := r.URL.Query().Get(key)
	if validator.IsEmpty(v) {
		return "", validator.ValidationErrors{{Field: key, Message: key + " is required"}}
	}
	return v, nil
}
