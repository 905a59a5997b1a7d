package payroll

import (
	"slices"
	"strings"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MaxPeriodHours is every hour of a 14-day pay period.
const MaxPeriodHours = 14 * 24

// maxBonus is the exclusive bound of the NUMERIC(12,2) bonus column.
var maxBonus = decimal.New(1, 10)

// Export formats
const (
	FormatText = "text"
	FormatXLSX = "xlsx"
)

func validateDate(errs validator.ValidationErrors, date string) validator.ValidationErrors {
	if date == "" {
		return errs
	}
	if _, ok := validator.IsValidDate(date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
	}
	return errs
}

func validateEmployeeID(errs validator.ValidationErrors, id string) validator.ValidationErrors {
	if validator.IsEmpty(id) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	return errs
}

// SetAdjustmentRequest stores Hours as the period total. An empty Hours clears it.
type SetAdjustmentRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // any day of the period, defaults to today
	Hours      string `json:"hours"`

	HoursValue *float64 `json:"-"`
}

func (r *SetAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateEmployeeID(errs, r.EmployeeID)
	errs = validateDate(errs, r.Date)

	r.HoursValue = nil
	if strings.TrimSpace(r.Hours) != "" {
		v, ok := validator.ParseNonNegative(r.Hours)
		switch {
		case !ok:
			errs = append(errs, validator.ValidationError{Field: "hours", Message: ErrInvalidHours.Error()})
		case v > MaxPeriodHours:
			errs = append(errs, validator.ValidationError{Field: "hours", Message: ErrHoursTooLarge.Error()})
		default:
			r.HoursValue = &v
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RoundAdjustmentRequest struct {
	EmployeeID string              `json:"employee_id"`
	Date       string              `json:"date"`
	Direction  payperiod.Direction `json:"direction"`
	// Increment falls back to the configured rounding increment.
	Increment *float64 `json:"increment,omitempty"`
}

func (r *RoundAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateEmployeeID(errs, r.EmployeeID)
	errs = validateDate(errs, r.Date)
	errs = validateRounding(errs, r.Direction, r.Increment)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RoundAllRequest struct {
	Date      string              `json:"date"`
	Direction payperiod.Direction `json:"direction"`
	Increment *float64            `json:"increment,omitempty"`
}

func (r *RoundAllRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateDate(errs, r.Date)
	errs = validateRounding(errs, r.Direction, r.Increment)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRounding(errs validator.ValidationErrors, dir payperiod.Direction, inc *float64) validator.ValidationErrors {
	if !dir.Valid() {
		errs = append(errs, validator.ValidationError{Field: "direction", Message: ErrInvalidDirection.Error()})
	}
	if inc != nil && (*inc < 0 || *inc > MaxPeriodHours) {
		errs = append(errs, validator.ValidationError{Field: "increment", Message: "increment must be between 0 and 336"})
	}
	return errs
}

// SetBonusRequest stores Amount for the period. An empty Amount clears it.
type SetBonusRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Amount     string `json:"amount"`

	AmountValue *decimal.Decimal `json:"-"`
}

func (r *SetBonusRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateEmployeeID(errs, r.EmployeeID)
	errs = validateDate(errs, r.Date)

	r.AmountValue = nil
	if amount := strings.TrimSpace(r.Amount); amount != "" {
		v, err := decimal.NewFromString(amount)
		switch {
		case err != nil || v.IsNegative():
			errs = append(errs, validator.ValidationError{Field: "amount", Message: ErrInvalidAmount.Error()})
		case v.Round(2).GreaterThanOrEqual(maxBonus):
			errs = append(errs, validator.ValidationError{Field: "amount", Message: ErrAmountTooLarge.Error()})
		default:
			r.AmountValue = &v
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportRequest struct {
	Date   string `json:"date"`
	Format string `json:"format"`
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = validateDate(errs, r.Date)

	if r.Format == "" {
		r.Format = FormatText
	}
	if !slices.Contains([]string{FormatText, FormatXLSX}, r.Format) {
		errs = append(errs, validator.ValidationError{Field: "format", Message: ErrInvalidFormat.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LineResponse struct {
	EmployeeID    string          `json:"employee_id"`
	Name          string          `json:"name"`
	DisplayName   string          `json:"display_name"`
	IsManager     bool            `json:"is_manager"`
	ActualHours   float64         `json:"actual_hours"`
	ResolvedHours float64         `json:"resolved_hours"`
	Overridden    bool            `json:"overridden"`
	ExportHours   float64         `json:"export_hours"`
	Bonus         decimal.Decimal `json:"bonus"`
	ExportLine    string          `json:"export_line"`
}

func NewLineResponse(l Line) LineResponse {
	return LineResponse{
		EmployeeID:    l.EmployeeID,
		Name:          l.Name,
		DisplayName:   DisplayName(l.Name),
		IsManager:     l.IsManager,
		ActualHours:   payperiod.Round2(l.ActualHours),
		ResolvedHours: payperiod.Round2(l.ResolvedHours),
		Overridden:    l.Overridden,
		ExportHours:   l.ExportHours,
		Bonus:         l.Bonus,
		ExportLine:    FormatLine(l),
	}
}

type PeriodSummaryResponse struct {
	PeriodStart string         `json:"period_start"`
	PeriodEnd   string         `json:"period_end"`
	PeriodLabel string         `json:"period_label"`
	Lines       []LineResponse `json:"lines"`
	ExportText  string         `json:"export_text"`
}

type AdjustmentResponse struct {
	EmployeeID  string   `json:"employee_id"`
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	ActualHours float64  `json:"actual_hours"`
	Hours       *float64 `json:"hours"` // nil when no adjustment is stored
}

type BonusResponse struct {
	EmployeeID  string           `json:"employee_id"`
	PeriodStart string           `json:"period_start"`
	PeriodEnd   string           `json:"period_end"`
	Amount      *decimal.Decimal `json:"amount"` // nil when no bonus is stored
}

// ExportFile is a rendered export ready to be written to a client or storage.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
