package shift

import "errors"

// Shift domain errors
var (
	ErrShiftAlreadyOpen = errors.New("you already have an active shift")
	ErrNoOpenShift      = errors.New("no active shift to clock out of")
	ErrShiftNotFound    = errors.New("shift record not found")
	ErrInvalidClockOut  = errors.New("clock out must not be before clock in")
)
