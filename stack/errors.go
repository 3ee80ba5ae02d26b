package stack

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every ConfigurationError.
	ErrConfiguration = errors.New("invalid configuration")

	ErrInvalidViewport = errors.New("viewport width and height must be positive")
	ErrInvalidChild    = errors.New("child needs a non-empty view id and a provider")
	ErrDuplicateChild  = errors.New("child already added")
	ErrUnknownChild    = errors.New("unknown child")
)

// ConfigurationError is returned by setters given a value the container
// cannot lay out with. The setter has no effect.
type ConfigurationError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Err}
}
