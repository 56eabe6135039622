package learning

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned for items that do not exist or were deleted.
	ErrNotFound = errors.New("learning item not found")
	// ErrConflict is returned when an item changed between reading and updating it,
	// typically because two reviews of the same item raced.
	ErrConflict = errors.New("learning item was modified concurrently")
)

// FieldViolation describes one invalid input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned before any write when input fields are invalid.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return "validation failed: " + strings.Join(messages, ", ")
}
