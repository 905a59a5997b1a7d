package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/payperiod"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

// Event names sent to the publisher
const (
	EventClockIn  = "clock_in"
	EventClockOut = "clock_out"
)

type ShiftServiceImpl struct {
	tx           database.Transactor
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	publisher    shift.EventPublisher
	loc          *time.Location
	now          func() time.Time
}

func NewShiftService(
	tx database.Transactor,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	publisher shift.EventPublisher,
	loc *time.Location,
) shift.ShiftService {
	if loc == nil {
		loc = time.UTC
	}
	return &ShiftServiceImpl{
		tx:           tx,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		publisher:    publisher,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *ShiftServiceImpl) publish(event string, record shift.ShiftResponse) {
	if s.publisher != nil {
		s.publisher.PublishShiftEvent(event, record)
	}
}

// ClockIn implements shift.ShiftService.
func (s *ShiftServiceImpl) ClockIn(ctx context.Context, employeeID string) (shift.ShiftResponse, error) {
	var created shift.ShiftRecord

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		// Serialises clock actions of one employee.
		if err := s.employeeRepo.LockByID(txCtx, employeeID); err != nil {
			return err
		}

		_, err := s.shiftRepo.GetOpenByEmployee(txCtx, employeeID)
		if err == nil {
			return shift.ErrShiftAlreadyOpen
		}
		if !errors.Is(err, shift.ErrNoOpenShift) {
			return fmt.Errorf("failed to check open shift: %w", err)
		}

		emp, err := s.employeeRepo.GetByID(txCtx, employeeID)
		if err != nil {
			return err
		}

		created, err = s.shiftRepo.Create(txCtx, shift.ShiftRecord{
			EmployeeID: employeeID,
			ClockIn:    s.now().UTC(),
		})
		if err != nil {
			return err
		}
		created.EmployeeName = &emp.Name
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	resp := shift.NewShiftResponse(created, s.loc)
	slog.Info("employee clocked in", "employee_id", employeeID, "shift_id", created.ID)
	s.publish(EventClockIn, resp)
	return resp, nil
}

// ClockOut implements shift.ShiftService.
func (s *ShiftServiceImpl) ClockOut(ctx context.Context, employeeID string) (shift.ShiftResponse, error) {
	var closed shift.ShiftRecord

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.employeeRepo.LockByID(txCtx, employeeID); err != nil {
			return err
		}

		open, err := s.shiftRepo.GetOpenByEmployee(txCtx, employeeID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		if now.Before(open.ClockIn) {
			now = open.ClockIn
		}
		open.ClockOut = &now

		closed, err = s.shiftRepo.Update(txCtx, open)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	resp := shift.NewShiftResponse(closed, s.loc)
	slog.Info("employee clocked out", "employee_id", employeeID, "shift_id", closed.ID)
	s.publish(EventClockOut, resp)
	return resp, nil
}

// GetClockStatus implements shift.ShiftService.
func (s *ShiftServiceImpl) GetClockStatus(ctx context.Context, employeeID string) (shift.ClockStatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return shift.ClockStatusResponse{}, err
	}

	now := s.now()
	period := payperiod.For(now.In(s.loc))
	from, to := period.Range(s.loc)

	records, err := s.shiftRepo.List(ctx, shift.ShiftFilter{
		EmployeeID: &employeeID,
		From:       from,
		To:         to,
		Descending: true,
	})
	if err != nil {
		return shift.ClockStatusResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	status := shift.ClockStatusResponse{
		Employee: shift.ClockEmployee{
			ID:           emp.ID,
			Name:         emp.Name,
			EmployeeCode: emp.EmployeeCode,
		},
		PayPeriodStart:     period.StartString(),
		PayPeriodEnd:       period.EndString(),
		PayPeriodLabel:     period.Label(),
		Records:            make([]shift.ShiftResponse, 0, len(records)),
		CanClockIn:         true,
		TotalBiweeklyHours: payperiod.Round2(payperiod.TotalHours(shift.Intervals(records))),
	}
	for _, r := range records {
		status.Records = append(status.Records, shift.NewShiftResponse(r, s.loc))
	}

	// The open shift may have started before this period.
	open, err := s.shiftRepo.GetOpenByEmployee(ctx, employeeID)
	switch {
	case err == nil:
		active := shift.NewShiftResponse(open, s.loc)
		status.ActiveRecord = &active
		status.CanClockIn = false
		status.CanClockOut = true
		status.CurrentShiftHours = payperiod.Round2(payperiod.ElapsedHours(open.ClockIn, now))
	case !errors.Is(err, shift.ErrNoOpenShift):
		return shift.ClockStatusResponse{}, fmt.Errorf("failed to get open shift: %w", err)
	}

	return status, nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, req shift.ListShiftsRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	period := payperiod.For(s.now().In(s.loc))
	if req.StartDate != "" {
		start, _ := payperiod.ParseDate(req.StartDate)
		end, _ := payperiod.ParseDate(req.EndDate)
		var err error
		if period, err = payperiod.NewRange(start, end); err != nil {
			return nil, err
		}
	}

	from, to := period.Range(s.loc)
	filter := shift.ShiftFilter{From: from, To: to}
	if req.EmployeeID != "" {
		filter.EmployeeID = &req.EmployeeID
	}

	records, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, shift.NewShiftResponse(r, s.loc))
	}
	return responses, nil
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var created shift.ShiftRecord
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.employeeRepo.GetByID(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		clockOut := req.ClockOutTime.UTC()
		created, err = s.shiftRepo.Create(txCtx, shift.ShiftRecord{
			EmployeeID: emp.ID,
			ClockIn:    req.ClockInTime.UTC(),
			ClockOut:   &clockOut,
		})
		if err != nil {
			return err
		}
		created.EmployeeName = &emp.Name
		return nil
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	slog.Info("shift added by admin", "employee_id", created.EmployeeID, "shift_id", created.ID)
	return shift.NewShiftResponse(created, s.loc), nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	var updated shift.ShiftRecord
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.shiftRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if err := s.employeeRepo.LockByID(txCtx, current.EmployeeID); err != nil {
			return err
		}

		if req.ClockOutTime == nil && !current.IsOpen() {
			open, err := s.shiftRepo.GetOpenByEmployee(txCtx, current.EmployeeID)
			if err == nil && open.ID != current.ID {
				return shift.ErrShiftAlreadyOpen
			}
			if err != nil && !errors.Is(err, shift.ErrNoOpenShift) {
				return fmt.Errorf("failed to check open shift: %w", err)
			}
		}

		current.ClockIn = req.ClockInTime.UTC()
		current.ClockOut = nil
		if req.ClockOutTime != nil {
			out := req.ClockOutTime.UTC()
			current.ClockOut = &out
		}

		updated, err = s.shiftRepo.Update(txCtx, current)
		return err
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	slog.Info("shift updated by admin", "shift_id", updated.ID)
	return shift.NewShiftResponse(updated, s.loc), nil
}
