// Package errors provides custom error types for the refmap pipeline.
// These errors enable programmatic error checking and carry enough
// position information to point at the offending input file and row.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the refmap pipeline
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingField indicates that a required column or field is absent
	ErrMissingField = errors.New("missing field")
)

// ParseError represents a row or value that could not be parsed.
type ParseError struct {
	File  string
	Line  int    // 1-based, including the header row
	Field string // column name, when known
	Value string
	Err   error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s:%d: parsing %s %q: %v", e.File, e.Line, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// MissingFieldError represents an input table without a required column.
type MissingFieldError struct {
	File  string
	Field string
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: required column %q not found in header", e.File, e.Field)
}

// Is implements errors.Is support
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// IOError represents a failure to read or write a pipeline artifact.
type IOError struct {
	Op   string // "read", "write", "decode", "encode"
	Path string
	Err  error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// WrapIO wraps an error with I/O context, returning nil if err is nil.
func WrapIO(err error, op, path string) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// Is reports whether any error in err's tree matches target.
// It's an alias for the standard library errors.Is.
var Is = errors.Is

// As finds the first error in err's tree that matches target.
// It's an alias for the standard library errors.As.
var As = errors.As
