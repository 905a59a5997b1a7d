package shift

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// DisplayLayout is how clock times are shown on report and clock screens.
const DisplayLayout = "Jan 02, 2006 03:04 PM"

type ShiftResponse struct {
	ID              string   `json:"id"`
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name,omitempty"`
	ClockIn         string   `json:"clock_in"`
	ClockOut        *string  `json:"clock_out"`
	ClockInDisplay  string   `json:"clock_in_display"`
	ClockOutDisplay *string  `json:"clock_out_display"`
	Hours           *float64 `json:"hours"`
	IsOpen          bool     `json:"is_open"`
}

// NewShiftResponse renders a record with display times in loc.
func NewShiftResponse(s ShiftRecord, loc *time.Location) ShiftResponse {
	if loc == nil {
		loc = time.UTC
	}
	resp := ShiftResponse{
		ID:             s.ID,
		EmployeeID:     s.EmployeeID,
		ClockIn:        s.ClockIn.In(loc).Format(time.RFC3339),
		ClockInDisplay: s.ClockIn.In(loc).Format(DisplayLayout),
		IsOpen:         s.IsOpen(),
	}
	if s.EmployeeName != nil {
		resp.EmployeeName = *s.EmployeeName
	}
	if s.ClockOut != nil {
		out := s.ClockOut.In(loc).Format(time.RFC3339)
		display := s.ClockOut.In(loc).Format(DisplayLayout)
		hours := payperiod.Round2(s.Interval().Hours())
		resp.ClockOut = &out
		resp.ClockOutDisplay = &display
		resp.Hours = &hours
	}
	return resp
}

type ClockEmployee struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	EmployeeCode string `json:"employee_code"`
}

type ClockStatusResponse struct {
	Employee           ClockEmployee   `json:"employee"`
	PayPeriodStart     string          `json:"pay_period_start"`
	PayPeriodEnd       string          `json:"pay_period_end"`
	PayPeriodLabel     string          `json:"pay_period_label"`
	Records            []ShiftResponse `json:"records"`
	ActiveRecord       *ShiftResponse  `json:"active_record"`
	CanClockIn         bool            `json:"can_clock_in"`
	CanClockOut        bool            `json:"can_clock_out"`
	CurrentShiftHours  float64         `json:"current_shift_hours"`
	TotalBiweeklyHours float64         `json:"total_biweekly_hours"`
}

type ListShiftsRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
}

// Validate checks the filter. Both dates empty means the current pay period.
func (r *ListShiftsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid id"})
	}

	if (r.StartDate == "") != (r.EndDate == "") {
		errs = append(errs, validator.ValidationError{Field: "date_range", Message: "Select both start and end dates for a custom range."})
	} else if r.StartDate != "" {
		start, okStart := validator.IsValidDate(r.StartDate)
		end, okEnd := validator.IsValidDate(r.EndDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
		if !okEnd {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateShiftRequest struct {
	EmployeeID string `json:"employee_id"`
	ClockIn    string `json:"clock_in"`  // RFC3339
	ClockOut   string `json:"clock_out"` // RFC3339

	ClockInTime  time.Time `json:"-"`
	ClockOutTime time.Time `json:"-"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	in, okIn := validator.IsValidDateTime(r.ClockIn)
	if !okIn {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be an ISO8601 timestamp"})
	}
	out, okOut := validator.IsValidDateTime(r.ClockOut)
	if !okOut {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be an ISO8601 timestamp"})
	}
	if okIn && okOut && out.Before(in) {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: ErrInvalidClockOut.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	r.ClockInTime, r.ClockOutTime = in, out
	return nil
}

type UpdateShiftRequest struct {
	ID       string `json:"-"`
	ClockIn  string `json:"clock_in"` // RFC3339
	// ClockOut empty reopens the shift.
	ClockOut string `json:"clock_out"`

	ClockInTime  time.Time  `json:"-"`
	ClockOutTime *time.Time `json:"-"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		return ErrShiftNotFound
	}

	in, okIn := validator.IsValidDateTime(r.ClockIn)
	if !okIn {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in must be an ISO8601 timestamp"})
	}

	var outPtr *time.Time
	if !validator.IsEmpty(r.ClockOut) {
		out, okOut := validator.IsValidDateTime(r.ClockOut)
		if !okOut {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must be an ISO8601 timestamp"})
		} else if okIn && out.Before(in) {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: ErrInvalidClockOut.Error()})
		} else {
			outPtr = &out
		}
	}

	if len(errs) > 0 {
		return errs
	}
	r.ClockInTime, r.ClockOutTime = in, outPtr
	return nil
}
