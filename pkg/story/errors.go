package story

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteSelection = errors.New("incomplete selection")
	ErrGeneration          = errors.New("story generation failed")
	ErrPersistence         = errors.New("story storage failed")
	ErrValidation          = errors.New("invalid input")
	ErrEmptyStory          = errors.New("story has no pages")
)

// ErrNotFound is returned by stores for unknown story ids.
var ErrNotFound = fmt.Errorf("%w: story not found", ErrPersistence)

// ValidationError describes a rejected input value. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
	Value  any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
