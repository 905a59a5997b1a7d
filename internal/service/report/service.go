package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
)

type ReportServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

func NewReportService(shiftRepo shift.ShiftRepository, employeeRepo employee.EmployeeRepository, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// resolveRange picks the dates covered by the request and the label prefix
// shown above the results.
func (s *ReportServiceImpl) resolveRange(req report.HoursReportRequest) (payperiod.Period, string, error) {
	if req.Mode == report.ModePayPeriod {
		date := s.now().In(s.loc)
		if req.PayPeriodDate != "" {
			d, err := payperiod.ParseDate(req.PayPeriodDate)
			if err != nil {
				return payperiod.Period{}, "", err
			}
			date = d
		}
		return payperiod.For(date), "Pay Period: ", nil
	}

	start, err := payperiod.ParseDate(req.StartDate)
	if err != nil {
		return payperiod.Period{}, "", err
	}
	end, err := payperiod.ParseDate(req.EndDate)
	if err != nil {
		return payperiod.Period{}, "", err
	}
	period, err := payperiod.NewRange(start, end)
	if err != nil {
		return payperiod.Period{}, "", err
	}
	return period, "Custom Range: ", nil
}

// GenerateHoursReport lists every shift whose clock-in falls in the covered
// dates, oldest first, with a total over completed shifts.
func (s *ReportServiceImpl) GenerateHoursReport(ctx context.Context, req report.HoursReportRequest) (report.HoursReport, error) {
	if err := req.Validate(); err != nil {
		return report.HoursReport{}, err
	}

	period, prefix, err := s.resolveRange(req)
	if err != nil {
		return report.HoursReport{}, err
	}

	filter := shift.ShiftFilter{}
	filter.From, filter.To = period.Range(s.loc)

	result := report.HoursReport{
		Mode:        req.Mode,
		PeriodStart: period.StartString(),
		PeriodEnd:   period.EndString(),
		PeriodLabel: prefix + period.Label(),
		Records:     []report.HoursReportRecord{},
		GeneratedAt: s.now().In(s.loc).Format(time.RFC3339),
	}
	if req.Mode == report.ModePayPeriod {
		result.PayPeriodDate = req.PayPeriodDate
		if result.PayPeriodDate == "" {
			result.PayPeriodDate = payperiod.Date(s.now().In(s.loc)).Format("2006-01-02")
		}
	}

	if req.EmployeeID != "" {
		e, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return report.HoursReport{}, err
		}
		result.EmployeeName = e.Name
		filter.EmployeeID = &e.ID
	}

	records, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return report.HoursReport{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	for _, r := range records {
		resp := shift.NewShiftResponse(r, s.loc)
		result.Records = append(result.Records, report.HoursReportRecord{
			EmployeeID: resp.EmployeeID,
			Employee:   resp.EmployeeName,
			ClockIn:    resp.ClockInDisplay,
			ClockOut:   resp.ClockOutDisplay,
			Hours:      resp.Hours,
		})
	}
	result.TotalHours = payperiod.Round2(payperiod.TotalHours(shift.Intervals(records)))

	if len(result.Records) == 0 {
		result.EmptyMessage = report.EmptyMessage(req.Mode)
	}

	slog.Info("hours report generated", "mode", req.Mode, "period", period.String(), "records", len(result.Records))
	return result, nil
}

// GenerateHoursReportPDF implements report.ReportService.
func (s *ReportServiceImpl) GenerateHoursReportPDF(ctx context.Context, req report.HoursReportRequest) ([]byte, error) {
	hours, err := s.GenerateHoursReport(ctx, req)
	if err != nil {
		return nil, err
	}

	content, err := renderPDF(hours)
	if err != nil {
		slog.Error("failed to render hours report", "error", err)
		return nil, report.ErrReportGenerationFailed
	}
	return content, nil
}
