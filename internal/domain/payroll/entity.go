package payroll

import (
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shopspring/decimal"
)

// Line is the payroll figure of one employee for one pay period.
type Line struct {
	EmployeeID string
	Name       string
	IsManager  bool
	Period     payperiod.Period

	// ActualHours is the sum of completed shifts.
	ActualHours float64
	// ResolvedHours is the stored adjustment when Overridden, else ActualHours.
	ResolvedHours float64
	Overridden    bool
	// ExportHours is ResolvedHours rounded to the nearest export increment.
	ExportHours float64
	Bonus       decimal.Decimal
}

// Resolve overlays an optional adjustment on the actual hours. The value is
// returned unrounded; export rounding is applied to it exactly once.
func Resolve(actual float64, adjustment *float64) (float64, bool) {
	if adjustment == nil {
		return actual, false
	}
	return *adjustment, true
}
