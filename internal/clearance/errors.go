package clearance

import "fmt"

// UnknownSpanError reports a span name missing from the configured set.
type UnknownSpanError struct {
	Name string
}

func (e *UnknownSpanError) Error() string {
	return fmt.Sprintf("unknown span: %s", e.Name)
}

func NewUnknownSpanError(name string) *UnknownSpanError {
	return &UnknownSpanError{Name: name}
}
