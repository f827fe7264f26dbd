package tide

import "fmt"

// NoDataError reports that a day has no tide points to interpolate from.
// Callers must treat it as "unavailable", never as height zero.
type NoDataError struct {
	Date string
}

func (e *NoDataError) Error() string {
	if e.Date != "" {
		return fmt.Sprintf("no tide data for %s", e.Date)
	}
	return "no tide data"
}

func NewNoDataError(date string) *NoDataError {
	return &NoDataError{Date: date}
}

// InvalidTimeError reports a time-of-day outside 0..1439 minutes.
type InvalidTimeError struct {
	Minutes int
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("time of day out of range: %d minutes", e.Minutes)
}

func NewInvalidTimeError(minutes int) *InvalidTimeError {
	return &InvalidTimeError{Minutes: minutes}
}
