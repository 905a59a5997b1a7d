package http

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetPeriodSummary(w http.ResponseWriter, r *http.Request)
	SetAdjustment(w http.ResponseWriter, r *http.Request)
	RoundAdjustment(w http.ResponseWriter, r *http.Request)
	RoundAll(w http.ResponseWriter, r *http.Request)
	GetBonus(w http.ResponseWriter, r *http.Request)
	SetBonus(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	GetArchivedExport(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// GetPeriodSummary implements PayrollHandler.
func (h *payrollHandlerImpl) GetPeriodSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.payrollService.GetPeriodSummary(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}

// SetAdjustment implements PayrollHandler.
func (h *payrollHandlerImpl) SetAdjustment(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetAdjustmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.payrollService.SetAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Hours adjustment saved"
	if resp.Hours == nil {
		message = "Hours adjustment cleared"
	}
	response.SuccessWithMessage(w, message, resp)
}

// RoundAdjustment implements PayrollHandler.
func (h *payrollHandlerImpl) RoundAdjustment(w http.ResponseWriter, r *http.Request) {
	var req payroll.RoundAdjustmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.payrollService.RoundAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Hours rounded", resp)
}

// RoundAll implements PayrollHandler.
func (h *payrollHandlerImpl) RoundAll(w http.ResponseWriter, r *http.Request) {
	var req payroll.RoundAllRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.payrollService.RoundAll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Hours rounded for the period", resp)
}

// GetBonus implements PayrollHandler.
func (h *payrollHandlerImpl) GetBonus(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	resp, err := h.payrollService.GetBonus(r.Context(), q.Get("employee_id"), q.Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resp)
}

// SetBonus implements PayrollHandler.
func (h *payrollHandlerImpl) SetBonus(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetBonusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.payrollService.SetBonus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Bonus saved"
	if resp.Amount == nil {
		message = "Bonus cleared"
	}
	response.SuccessWithMessage(w, message, resp)
}

// Export implements PayrollHandler.
func (h *payrollHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	file, err := h.payrollService.Export(r.Context(), payroll.ExportRequest{
		Date:   q.Get("date"),
		Format: q.Get("format"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, file.FileName, file.ContentType, file.Content)
}

// GetArchivedExport implements PayrollHandler.
func (h *payrollHandlerImpl) GetArchivedExport(w http.ResponseWriter, r *http.Request) {
	file, err := h.payrollService.GetArchivedExport(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Attachment(w, file.FileName, file.ContentType, file.Content)
}
