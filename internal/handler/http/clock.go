package http

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

// ClockHandler serves the employee clock screen.
type ClockHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
}

type clockHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewClockHandler(shiftService shift.ShiftService) ClockHandler {
	return &clockHandlerImpl{shiftService: shiftService}
}

// Status implements ClockHandler.
func (h *clockHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.shiftService.GetClockStatus(r.Context(), middleware.EmployeeIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// ClockIn implements ClockHandler.
func (h *clockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	record, err := h.shiftService.ClockIn(r.Context(), middleware.EmployeeIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Clocked in", record)
}

// ClockOut implements ClockHandler.
func (h *clockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.shiftService.ClockOut(r.Context(), middleware.EmployeeIDFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Clocked out", record)
}
