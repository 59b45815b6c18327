package timesheet

import (
	"sort"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// Calculator splits worked time into regular and overtime hours. The split is applied
// per calendar day: hours are never pooled across days.
type Calculator struct {
	regularHoursPerDay decimal.Decimal
	overtimeMultiplier decimal.Decimal
}

func NewCalculator(regularHoursPerDay, overtimeMultiplier decimal.Decimal) Calculator {
	return Calculator{
		regularHoursPerDay: regularHoursPerDay,
		overtimeMultiplier: overtimeMultiplier,
	}
}

// DefaultCalculator uses an 8 hour day and a 1.5x overtime multiplier.
func DefaultCalculator() Calculator {
	return NewCalculator(decimal.NewFromInt(8), decimal.RequireFromString("1.5"))
}

// OvertimeRate is the hourly rate paid for overtime hours.
func (c Calculator) OvertimeRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(c.overtimeMultiplier).Round(2)
}

// Daily sums entries per day and splits each day at the threshold. Days whose total
// is zero are left out. Overlapping entries are summed as given.
func (c Calculator) Daily(entries []timesheet.Entry, rate decimal.Decimal) []timesheet.DailyHours {
	byDay := make(map[time.Time]decimal.Decimal)
	for _, e := range entries {
		y, m, d := e.WorkDate.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		byDay[day] = byDay[day].Add(e.Hours())
	}

	days := make([]timesheet.DailyHours, 0, len(byDay))
	for day, hours := range byDay {
		if !hours.IsPositive() {
			continue
		}
		regular := decimal.Min(hours, c.regularHoursPerDay)
		overtime := hours.Sub(regular)
		pay := regular.Mul(rate).Add(overtime.Mul(rate).Mul(c.overtimeMultiplier)).Round(2)

		days = append(days, timesheet.DailyHours{
			Date:          day,
			Hours:         hours,
			RegularHours:  regular,
			OvertimeHours: overtime,
			Pay:           pay,
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

func (c Calculator) Totals(days []timesheet.DailyHours) timesheet.Totals {
	var t timesheet.Totals
	for _, d := range days {
		t.Hours = t.Hours.Add(d.Hours)
		t.RegularHours = t.RegularHours.Add(d.RegularHours)
		t.OvertimeHours = t.OvertimeHours.Add(d.OvertimeHours)
		t.Pay = t.Pay.Add(d.Pay)
	}
	return t
}
