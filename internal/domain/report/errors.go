package report

import "errors"

var (
	ErrMissingRange           = errors.New("select both start and end dates for a custom range")
	ErrInvalidDateRange       = errors.New("end date must not be before start date")
	ErrReportGenerationFailed = errors.New("failed to generate report")
)
