package http

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	HoursReport(w http.ResponseWriter, r *http.Request)
	HoursReportPDF(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

// HoursReport implements ReportHandler.
func (h *reportHandlerImpl) HoursReport(w http.ResponseWriter, r *http.Request) {
	var req report.HoursReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.reportService.GenerateHoursReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// HoursReportPDF takes the report fields as query parameters.
func (h *reportHandlerImpl) HoursReportPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := report.HoursReportRequest{
		Mode:          q.Get("view_mode"),
		PayPeriodDate: q.Get("pay_period_date"),
		StartDate:     q.Get("start_date"),
		EndDate:       q.Get("end_date"),
		EmployeeID:    q.Get("employee_id"),
	}

	content, err := h.reportService.GenerateHoursReportPDF(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	name := "hours_report.pdf"
	if req.Mode == report.ModePayPeriod && req.PayPeriodDate != "" {
		name = fmt.Sprintf("hours_report_%s.pdf", req.PayPeriodDate)
	} else if req.StartDate != "" && req.EndDate != "" {
		name = fmt.Sprintf("hours_report_%s_%s.pdf", req.StartDate, req.EndDate)
	}
	response.Attachment(w, name, "application/pdf", content)
}
