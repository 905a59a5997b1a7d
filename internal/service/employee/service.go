package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	tx           database.Transactor
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:           tx,
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, employee.OrderByName)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var created employee.Employee
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		exists, err := s.employeeRepo.ExistsByEmployeeCode(txCtx, req.EmployeeCode, "")
		if err != nil {
			return err
		}
		if exists {
			return employee.ErrEmployeeCodeExists
		}

		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			Name:         employee.JoinName(req.FirstName, req.LastName),
			EmployeeCode: req.EmployeeCode,
			IsManager:    req.IsManager,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "is_manager", created.IsManager)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		exists, err := s.employeeRepo.ExistsByEmployeeCode(txCtx, req.EmployeeCode, req.ID)
		if err != nil {
			return err
		}
		if exists {
			return employee.ErrEmployeeCodeExists
		}

		current.Name = employee.JoinName(req.FirstName, req.LastName)
		current.EmployeeCode = req.EmployeeCode
		if req.IsManager != nil {
			current.IsManager = *req.IsManager
		}

		updated, err = s.employeeRepo.Update(txCtx, current)
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		hasShifts, err := s.shiftRepo.ExistsForEmployee(txCtx, id)
		if err != nil {
			return err
		}
		if hasShifts {
			return employee.ErrEmployeeHasShifts
		}

		return s.employeeRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	slog.Info("employee deleted", "employee_id", id)
	return nil
}
