package override

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/shopspring/decimal"
)

// Repository stores at most one value per (kind, employee, period).
type Repository interface {
	// Get returns ErrOverrideNotFound when nothing is stored
	Get(ctx context.Context, kind Kind, key Key) (Override, error)

	// Upsert inserts the value or replaces the existing one
	Upsert(ctx context.Context, kind Kind, key Key, value decimal.Decimal) (Override, error)

	// Delete removes the value; deleting a missing row is not an error
	Delete(ctx context.Context, kind Kind, key Key) error

	// ListByPeriod returns every value of a kind for the period, keyed by employee id
	ListByPeriod(ctx context.Context, kind Kind, period payperiod.Period) (map[string]Override, error)
}
