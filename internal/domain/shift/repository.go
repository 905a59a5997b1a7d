package shift

import (
	"context"
)

// ShiftRepository defines data access methods for shift records.
type ShiftRepository interface {
	Create(ctx context.Context, record ShiftRecord) (ShiftRecord, error)

	GetByID(ctx context.Context, id string) (ShiftRecord, error)

	// GetOpenByEmployee returns ErrNoOpenShift when the employee is off the clock
	GetOpenByEmployee(ctx context.Context, employeeID string) (ShiftRecord, error)

	// Update writes clock_in and clock_out as given, including a nil clock_out
	Update(ctx context.Context, record ShiftRecord) (ShiftRecord, error)

	List(ctx context.Context, filter ShiftFilter) ([]ShiftRecord, error)

	ExistsForEmployee(ctx context.Context, employeeID string) (bool, error)
}
