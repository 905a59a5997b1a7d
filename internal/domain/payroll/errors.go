package payroll

import "errors"

var (
	ErrInvalidHours     = errors.New("hours must be a non-negative number")
	ErrHoursTooLarge    = errors.New("hours cannot exceed 336 in a pay period")
	ErrInvalidAmount    = errors.New("bonus must be a non-negative number")
	ErrAmountTooLarge   = errors.New("bonus must be less than 10000000000")
	ErrInvalidDirection = errors.New("direction must be up or down")
	ErrInvalidFormat    = errors.New("export format must be text or xlsx")
	ErrArchiveNotFound  = errors.New("no archived export for this period")
)
