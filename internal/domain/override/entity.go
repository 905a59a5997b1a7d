package override

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shopspring/decimal"
)

// Kind names a family of per-period overrides. Each kind has its own table.
type Kind string

const (
	// KindHoursAdjustment replaces the worked hours of a period.
	KindHoursAdjustment Kind = "hours_adjustment"
	// KindBonus is a one-off amount paid with a period.
	KindBonus Kind = "bonus"
)

func (k Kind) Valid() bool {
	return k == KindHoursAdjustment || k == KindBonus
}

// Key identifies the single override of a kind for an employee and period.
type Key struct {
	EmployeeID string
	Period     payperiod.Period
}

type Override struct {
	ID        string
	Kind      Kind
	Key       Key
	Value     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
