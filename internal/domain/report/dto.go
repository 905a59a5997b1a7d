package report

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// Report modes
const (
	ModePayPeriod = "pay_period"
	ModeCustom    = "custom"
)

const (
	emptyPayPeriodMessage = "There are no hours logged for this period"
	emptyCustomMessage    = "No records found for this period."
)

type HoursReportRequest struct {
	// Mode defaults to custom.
	Mode string `json:"view_mode"`
	// PayPeriodDate picks the period in pay_period mode, defaults to today.
	PayPeriodDate string `json:"pay_period_date"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	// EmployeeID narrows the report to one employee. Empty or "all" means everyone.
	EmployeeID string `json:"employee_id"`
}

func (r *HoursReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Mode == "" {
		r.Mode = ModeCustom
	}
	if r.EmployeeID == "all" {
		r.EmployeeID = ""
	}

	switch r.Mode {
	case ModePayPeriod:
		if r.PayPeriodDate != "" {
			if _, ok := validator.IsValidDate(r.PayPeriodDate); !ok {
				errs = append(errs, validator.ValidationError{Field: "pay_period_date", Message: "pay_period_date must be in YYYY-MM-DD format"})
			}
		}
	case ModeCustom:
		if validator.IsEmpty(r.StartDate) || validator.IsEmpty(r.EndDate) {
			errs = append(errs, validator.ValidationError{Field: "date_range", Message: "Select both start and end dates for a custom range."})
			break
		}
		start, okStart := validator.IsValidDate(r.StartDate)
		end, okEnd := validator.IsValidDate(r.EndDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
		if !okEnd {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrInvalidDateRange.Error()})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "view_mode", Message: "view_mode must be pay_period or custom"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmptyMessage is shown when a report has no records.
func EmptyMessage(mode string) string {
	if mode == ModePayPeriod {
		return emptyPayPeriodMessage
	}
	return emptyCustomMessage
}

type HoursReportRecord struct {
	EmployeeID string   `json:"employee_id"`
	Employee   string   `json:"employee"`
	ClockIn    string   `json:"clock_in"`
	ClockOut   *string  `json:"clock_out"`
	Hours      *float64 `json:"hours"`
}

type HoursReport struct {
	Mode          string              `json:"view_mode"`
	PeriodStart   string              `json:"period_start"`
	PeriodEnd     string              `json:"period_end"`
	PeriodLabel   string              `json:"period_label"`
	PayPeriodDate string              `json:"pay_period_date_value,omitempty"`
	EmployeeName  string              `json:"employee_name,omitempty"`
	Records       []HoursReportRecord `json:"records"`
	TotalHours    float64             `json:"total_hours"`
	EmptyMessage  string              `json:"empty_message"`
	GeneratedAt   string              `json:"generated_at"`
}
