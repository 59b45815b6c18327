package timesheet

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one shift. Start and End are offsets from midnight of WorkDate.
type Entry struct {
	ID        string
	StaffID   string
	WorkDate  time.Time
	Start     time.Duration
	End       time.Duration
	Note      *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var secondsPerHour = decimal.NewFromInt(3600)

// Hours is the shift length in decimal hours, rounded to two places.
func (e Entry) Hours() decimal.Decimal {
	seconds := int64((e.End - e.Start) / time.Second)
	return decimal.NewFromInt(seconds).Div(secondsPerHour).Round(2)
}

// DailyHours is one calendar day of worked time after the regular/overtime split.
type DailyHours struct {
	Date          time.Time
	Hours         decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	Pay           decimal.Decimal
}

type Totals struct {
	Hours         decimal.Decimal
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
	Pay           decimal.Decimal
}

// ParseClock parses HH:MM into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// FormatClock renders an offset from midnight as HH:MM.
func FormatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
}
