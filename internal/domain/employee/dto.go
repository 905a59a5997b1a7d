package employee

import (
	"strings"
	"unicode/utf8"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// MaxNameLength is the longest stored full name, in characters.
const MaxNameLength = 100

type CreateEmployeeRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmployeeCode string `json:"employee_code"`
	IsManager    bool   `json:"is_manager"`
}

func (r *CreateEmployeeRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	return validateFields(r.FirstName, r.LastName, r.EmployeeCode)
}

type UpdateEmployeeRequest struct {
	ID           string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmployeeCode string `json:"employee_code"`
	// IsManager is left unchanged when omitted.
	IsManager *bool `json:"is_manager,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)

	if validator.IsEmpty(r.ID) {
		return ErrEmployeeNotFound
	}
	return validateFields(r.FirstName, r.LastName, r.EmployeeCode)
}

func validateFields(first, last, code string) error {
	var errs validator.ValidationErrors

	if first == "" || last == "" || code == "" {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "First name, last name, and employee code are required.",
		})
		return errs
	}

	if utf8.RuneCountInString(JoinName(first, last)) > MaxNameLength {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "Name must be at most 100 characters.",
		})
	}

	if !validator.IsValidEmployeeCode(code) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "Employee code must be exactly 4 characters.",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmployeeCode string `json:"employee_code"`
	IsManager    bool   `json:"is_manager"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	first, last := SplitName(e.Name)
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		FirstName:    first,
		LastName:     last,
		EmployeeCode: e.EmployeeCode,
		IsManager:    e.IsManager,
	}
}
