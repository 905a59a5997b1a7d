package report

import "context"

// ReportService builds the admin hour report
type ReportService interface {
	GenerateHoursReport(ctx context.Context, req HoursReportRequest) (HoursReport, error)

	// GenerateHoursReportPDF renders the same report as a PDF document
	GenerateHoursReportPDF(ctx context.Context, req HoursReportRequest) ([]byte, error)
}
