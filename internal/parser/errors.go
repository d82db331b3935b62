package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingDependency is returned when a referenced UDT has no file.
	ErrMissingDependency = errors.New("missing dependency")
	// ErrCircularDependency is returned when a UDT references itself.
	ErrCircularDependency = errors.New("circular dependency")
	// ErrReadFile wraps I/O failures on the entry file or a referenced file.
	ErrReadFile = errors.New("read udt file")
	// ErrMaxDepth is returned when references nest deeper than allowed.
	ErrMaxDepth = errors.New("maximum nesting depth exceeded")
)

// MissingDependencyError names the reference that could not be resolved.
type MissingDependencyError struct {
	Name string
	File string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("%s: %q referenced in %s has no source file", ErrMissingDependency, e.Name, e.File)
}

func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }

// CircularDependencyError holds the chain of type names, ending in the repeat.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCircularDependency, strings.Join(e.Chain, " -> "))
}

func (e *CircularDependencyError) Unwrap() error { return ErrCircularDependency }
