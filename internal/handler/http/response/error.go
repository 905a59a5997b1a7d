package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/override"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.First(), validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidEmployeeCode):
		Unauthorized(w, "Invalid employee code.")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid admin credentials.")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, auth.ErrEmployeeRequired):
		Forbidden(w, "Clock in with your employee code first")
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, "Too many login attempts, try again shortly.")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "That employee code is already in use.")
	case errors.Is(err, employee.ErrEmployeeHasShifts):
		Conflict(w, "Cannot remove an employee with time records.")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftAlreadyOpen):
		Conflict(w, "You already have an active shift.")
	case errors.Is(err, shift.ErrNoOpenShift):
		ValidationError(w, "No active shift to clock out of.", nil)
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift record not found")
	case errors.Is(err, shift.ErrInvalidClockOut):
		ValidationError(w, "Clock out must not be before clock in.", map[string]string{"clock_out": err.Error()})

	// Pay period and report errors
	case errors.Is(err, payperiod.ErrInvalidDate):
		ValidationError(w, "Dates must be in YYYY-MM-DD format.", nil)
	case errors.Is(err, payperiod.ErrInvalidRange), errors.Is(err, report.ErrInvalidDateRange):
		ValidationError(w, "End date must not be before start date.", nil)
	case errors.Is(err, report.ErrMissingRange):
		ValidationError(w, "Select both start and end dates for a custom range.", nil)

	case errors.Is(err, report.ErrReportGenerationFailed):
		InternalServerError(w, "Failed to generate report")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrArchiveNotFound):
		NotFound(w, "No archived export for this period")
	case errors.Is(err, override.ErrNegativeValue):
		ValidationError(w, "Values must not be negative.", nil)

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
