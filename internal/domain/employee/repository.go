package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, employeeCode string) (Employee, error)
	List(ctx context.Context, order ListOrder) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)
	Delete(ctx context.Context, id string) error

	// ExistsByEmployeeCode reports whether another employee (not excludeID) holds code.
	ExistsByEmployeeCode(ctx context.Context, code string, excludeID string) (bool, error)

	// LockByID takes a row lock on the employee for the current transaction.
	LockByID(ctx context.Context, id string) error
}
