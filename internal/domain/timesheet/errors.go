package timesheet

import (
	"errors"
	"fmt"

	"github.com/policlinic/clinic-backend-go/internal/domain/period"
)

var (
	ErrEntryNotFound  = errors.New("timesheet entry not found")
	ErrInvalidClock   = errors.New("time must be formatted as HH:MM")
	ErrEndBeforeStart = fmt.Errorf("%w: end time must be after start time", period.ErrInvalidRange)
)
