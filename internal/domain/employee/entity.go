package employee

import (
	"strings"
	"time"
)

type Employee struct {
	ID           string
	Name         string
	EmployeeCode string
	// IsManager marks a salaried employee; payroll export flags the line.
	IsManager bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SplitName returns the first word and the remaining words of a full name.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// JoinName builds the stored full name, skipping empty parts.
func JoinName(first, last string) string {
	var parts []string
	for _, p := range []string{strings.TrimSpace(first), strings.TrimSpace(last)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// ListOrder selects the ordering of EmployeeRepository.List.
type ListOrder int

const (
	OrderByName ListOrder = iota
	// OrderByManagerThenName puts non-managers first, each group by name.
	OrderByManagerThenName
)
