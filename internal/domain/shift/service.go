package shift

import (
	"context"
)

// ShiftService defines business logic for clocking and shift maintenance
type ShiftService interface {
	// ClockIn opens a shift; rejected while another shift is open
	ClockIn(ctx context.Context, employeeID string) (ShiftResponse, error)

	// ClockOut closes the open shift
	ClockOut(ctx context.Context, employeeID string) (ShiftResponse, error)

	// GetClockStatus builds the employee clock screen for the current pay period
	GetClockStatus(ctx context.Context, employeeID string) (ClockStatusResponse, error)

	// ListShifts retrieves shift records with filters (admin)
	ListShifts(ctx context.Context, filter ListShiftsRequest) ([]ShiftResponse, error)

	// CreateShift records a completed shift on behalf of an employee (admin)
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)

	// UpdateShift fixes clock times of an existing record (admin)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
}

// EventPublisher receives clock-in/out notifications. Implementations must not block.
type EventPublisher interface {
	PublishShiftEvent(event string, record ShiftResponse)
}
