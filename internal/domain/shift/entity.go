package shift

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
)

type ShiftRecord struct {
	ID         string
	EmployeeID string
	ClockIn    time.Time
	// ClockOut is nil while the shift is in progress.
	ClockOut  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

func (s ShiftRecord) IsOpen() bool {
	return s.ClockOut == nil
}

func (s ShiftRecord) Interval() payperiod.Interval {
	return payperiod.Interval{Start: s.ClockIn, End: s.ClockOut}
}

// Intervals adapts records for payperiod.TotalHours.
func Intervals(records []ShiftRecord) []payperiod.Interval {
	out := make([]payperiod.Interval, 0, len(records))
	for _, r := range records {
		out = append(out, r.Interval())
	}
	return out
}

// ShiftFilter selects records whose clock_in lies in [From, To).
type ShiftFilter struct {
	EmployeeID *string
	From       time.Time
	To         time.Time
	// Descending orders newest clock_in first.
	Descending bool
}
