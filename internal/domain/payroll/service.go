package payroll

import (
	"context"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
)

// PayrollService resolves period hours and maintains adjustments and bonuses.
type PayrollService interface {
	// GetPeriodSummary lists every employee's figures for the period containing date
	GetPeriodSummary(ctx context.Context, date string) (PeriodSummaryResponse, error)

	// SetAdjustment stores or clears an hours override
	SetAdjustment(ctx context.Context, req SetAdjustmentRequest) (AdjustmentResponse, error)

	// RoundAdjustment rounds the worked hours of one employee and stores the result
	RoundAdjustment(ctx context.Context, req RoundAdjustmentRequest) (AdjustmentResponse, error)

	// RoundAll rounds every employee for the period in one transaction
	RoundAll(ctx context.Context, req RoundAllRequest) ([]AdjustmentResponse, error)

	GetBonus(ctx context.Context, employeeID string, date string) (BonusResponse, error)

	// SetBonus stores or clears a bonus
	SetBonus(ctx context.Context, req SetBonusRequest) (BonusResponse, error)

	Export(ctx context.Context, req ExportRequest) (ExportFile, error)

	// ArchiveExport writes the text export of period to file storage and returns its path
	ArchiveExport(ctx context.Context, period payperiod.Period) (string, error)

	// GetArchivedExport reads back the archived text export of the period containing date
	GetArchivedExport(ctx context.Context, date string) (ExportFile, error)
}
