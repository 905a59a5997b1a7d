package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("that employee code is already in use")
	ErrEmployeeHasShifts  = errors.New("cannot remove an employee with time records")
)
