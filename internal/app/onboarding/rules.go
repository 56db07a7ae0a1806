package onboarding

import (
	"fmt"
	"strings"
	"time"
)

// Age limits for the date of birth, both inclusive.
const (
	MinAge = 16
	MaxAge = 100
)

// Earliest accepted dates for historical fields.
var (
	MinGraduationDate = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)
	MinExamDate       = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// ExamNames lists the standardized tests a student can record.
var ExamNames = []string{"SAT", "TOEFL", "IELTS", "GRE", "GMAT", "ACT", "YDS", "YÖKDİL", "Other"}

// FieldError is a single validation failure tied to a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// dateLayout is the wire format for all wizard date fields.
const dateLayout = "2006-01-02"

// ParseDate parses an ISO date string as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// Age returns full years elapsed between birth date and now.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// ValidExamName reports whether name is one of the accepted exam types.
func ValidExamName(name string) bool {
	for _, n := range ExamNames {
		if n == name {
			return true
		}
	}
	return false
}

func requireString(errs []FieldError, field, value, message string) []FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, FieldError{Field: field, Message: message})
	}
	return errs
}

func checkDateOfBirth(errs []FieldError, field, value string, now time.Time) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: "date of birth is required"})
	}
	dob, err := ParseDate(value)
	if err != nil {
		return append(errs, FieldError{Field: field, Message: "date of birth must be a valid date (YYYY-MM-DD)"})
	}
	age := Age(dob, now)
	if age < MinAge || age > MaxAge {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("age must be between %d and %d years", MinAge, MaxAge),
		})
	}
	return errs
}

func checkDateRange(errs []FieldError, field, value string, min, max time.Time, label string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: label + " is required"})
	}
	d, err := ParseDate(value)
	if err != nil {
		return append(errs, FieldError{Field: field, Message: label + " must be a valid date (YYYY-MM-DD)"})
	}
	if d.Before(min) {
		errs = append(errs, FieldError{
			Field:   field,
			Message: fmt.Sprintf("%s cannot be before %s", label, min.Format(dateLayout)),
		})
	}
	if d.After(max) {
		errs = append(errs, FieldError{Field: field, Message: label + " cannot be in the future"})
	}
	return errs
}
