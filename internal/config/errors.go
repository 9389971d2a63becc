package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEnvironmentNotFound is matched by errors.Is for any EnvironmentNotFoundError.
var ErrEnvironmentNotFound = errors.New("environment not found")

// EnvironmentNotFoundError is returned when no document exists for the requested tier.
type EnvironmentNotFoundError struct {
	Name string
	Path string // Location that was searched
}

func (e *EnvironmentNotFoundError) Error() string {
	return fmt.Sprintf("environment '%s' not found (%s)", e.Name, e.Path)
}

func (e *EnvironmentNotFoundError) Is(target error) bool {
	return target == ErrEnvironmentNotFound
}

// MissingFieldError is returned when an environment document lacks one of
// the always-required keys.
type MissingFieldError struct {
	Path   string
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field(s): %s", e.Path, strings.Join(e.Fields, ", "))
}

// ParseError wraps a decoding failure together with the offending file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
