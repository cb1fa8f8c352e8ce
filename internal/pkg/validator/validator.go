package validator

import (
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsValidClock accepts wall-clock times like "08:30".
func IsValidClock(clock string) (time.Time, bool) {
	t, err := time.Parse(ClockLayout, clock)
	return t, err == nil
}

// PeriodErrors validates a (year, month) pair and returns field errors for it.
func PeriodErrors(year, month int) ValidationErrors {
	var errs ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if year < 2000 || year > 9999 {
		errs = append(errs, ValidationError{Field: "year", Message: "must be between 2000 and 9999"})
	}
	return errs
}
