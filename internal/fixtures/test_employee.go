package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
)

// Demo employee provisioned on fresh installs.
const (
	TestEmployeeCode = "0430"
	TestEmployeeName = "Test Employee"
)

// SeedTestEmployee creates the demo employee unless its code is already taken.
// It reports whether a row was inserted.
func SeedTestEmployee(ctx context.Context, repo employee.EmployeeRepository) (bool, error) {
	_, err := repo.GetByEmployeeCode(ctx, TestEmployeeCode)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return false, fmt.Errorf("failed to look up test employee: %w", err)
	}

	created, err := repo.Create(ctx, employee.Employee{
		Name:         TestEmployeeName,
		EmployeeCode: TestEmployeeCode,
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed test employee: %w", err)
	}
	slog.Info("seeded test employee", "employee_id", created.ID, "employee_code", TestEmployeeCode)
	return true, nil
}
