package validation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrInvalidUUID      = fmt.Errorf("invalid UUID format")
	ErrInvalidDateRange = fmt.Errorf("invalid date range")
)

// DateLayout is the format of every date accepted by the API.
const DateLayout = "2006-01-02"

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}

// ValidateDateRange parses optional start and end dates in YYYY-MM-DD format.
// A missing start date defaults to 30 days before the end date, a missing end date to today.
//
// Returns ErrInvalidDateRange when the start date is after the end date, and a
// validation Error when either date cannot be parsed.
func ValidateDateRange(start, end string, today time.Time) (time.Time, time.Time, error) {
	errors := make(map[string]string)

	endDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if end != "" {
		parsed, err := time.Parse(DateLayout, end)
		if err != nil {
			errors["end_date"] = "end_date must be in YYYY-MM-DD format"
		}
		endDate = parsed
	}

	startDate := endDate.AddDate(0, 0, -30)
	if start != "" {
		parsed, err := time.Parse(DateLayout, start)
		if err != nil {
			errors["start_date"] = "start_date must be in YYYY-MM-DD format"
		}
		startDate = parsed
	}

	if len(errors) > 0 {
		return time.Time{}, time.Time{}, &Error{Fields: errors}
	}
	if startDate.After(endDate) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date %s is after end_date %s",
			ErrInvalidDateRange, startDate.Format(DateLayout), endDate.Format(DateLayout))
	}
	return startDate, endDate, nil
}
