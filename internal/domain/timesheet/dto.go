package timesheet

import (
	"time"

	"github.com/policlinic/clinic-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEntryRequest struct {
	StaffID   string  `json:"staff_id"`
	WorkDate  string  `json:"work_date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Note      *string `json:"note,omitempty"`
}

type UpdateEntryRequest struct {
	WorkDate  *string `json:"work_date,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Note      *string `json:"note,omitempty"`
}

type EntryResponse struct {
	ID        string          `json:"id"`
	StaffID   string          `json:"staff_id"`
	WorkDate  string          `json:"work_date"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Hours     decimal.Decimal `json:"hours"`
	Note      *string         `json:"note,omitempty"`
}

func NewEntryResponse(e Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		StaffID:   e.StaffID,
		WorkDate:  e.WorkDate.Format(time.DateOnly),
		StartTime: FormatClock(e.Start),
		EndTime:   FormatClock(e.End),
		Hours:     e.Hours(),
		Note:      e.Note,
	}
}

type DailyHoursResponse struct {
	Date          string          `json:"date"`
	Hours         decimal.Decimal `json:"hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Pay           decimal.Decimal `json:"pay"`
}

func NewDailyHoursResponse(days []DailyHours) []DailyHoursResponse {
	out := make([]DailyHoursResponse, 0, len(days))
	for _, d := range days {
		out = append(out, DailyHoursResponse{
			Date:          d.Date.Format(time.DateOnly),
			Hours:         d.Hours,
			RegularHours:  d.RegularHours,
			OvertimeHours: d.OvertimeHours,
			Pay:           d.Pay,
		})
	}
	return out
}

func (r *CreateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
	}
	if !validator.IsValidClock(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: ErrInvalidClock.Error()})
	}
	if !validator.IsValidClock(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: ErrInvalidClock.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.WorkDate != nil {
		if _, ok := validator.IsValidDate(*r.WorkDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
		}
	}
	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: ErrInvalidClock.Error()})
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: ErrInvalidClock.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
