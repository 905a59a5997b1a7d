package validator

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// EmployeeCodeLength is the exact number of characters in an employee code.
const EmployeeCodeLength = 4

type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors collects field failures; request Validate methods return it as error.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// First returns the first message, used where a screen shows a single line.
func (v ValidationErrors) First() string {
	if len(v) == 0 {
		return ""
	}
	return v[0].Message
}

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts the v7 ids the repositories generate.
func IsValidUUID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 7 && len(s) == 36
}

// IsValidDate parses a YYYY-MM-DD date.
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(time.DateOnly, dateStr)
	return date, err == nil
}

// IsValidDateTime parses an RFC 3339 timestamp such as "2026-01-05T08:00:00Z"
// or "2026-01-05T08:00:00-06:00". Fractional seconds are accepted.
func IsValidDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}

// IsValidEmployeeCode counts characters, not bytes.
func IsValidEmployeeCode(code string) bool {
	return utf8.RuneCountInString(code) == EmployeeCodeLength
}

// ParseNonNegative parses a decimal number typed by a user. It rejects
// non-numeric input, NaN/Inf and negative values.
func ParseNonNegative(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
