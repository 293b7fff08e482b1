// Package errors provides the error types used by the mode table generator.
// Every failure here means the transcribed standards data is wrong or
// incomplete, so callers treat all of these as fatal: an unvalidated timing
// table must never reach display hardware.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As.
var As = errors.As

// Common sentinel errors for the generator
var (
	// ErrUnknownVIC indicates a sync or aspect table row referencing a VIC
	// with no detailed-timing record
	ErrUnknownVIC = errors.New("unknown video identification code")

	// ErrMissingKey indicates a VESA DMT block without a required parameter
	ErrMissingKey = errors.New("missing required key")

	// ErrMalformedTable indicates source table text that does not parse
	ErrMalformedTable = errors.New("malformed table")

	// ErrInconsistent indicates a derived quantity disagreeing with a
	// published redundant field beyond tolerance
	ErrInconsistent = errors.New("inconsistent timing data")
)

// UnknownVICError reports a cross-table lookup for a VIC that was never
// created by the detailed-timing pass.
type UnknownVICError struct {
	VIC   int
	Table string
}

// Error implements the error interface
func (e *UnknownVICError) Error() string {
	return fmt.Sprintf("%s references VIC %d with no detailed timing record", e.Table, e.VIC)
}

// Is implements errors.Is support
func (e *UnknownVICError) Is(target error) bool {
	return target == ErrUnknownVIC
}

// NewUnknownVICError creates a new UnknownVICError
func NewUnknownVICError(table string, vic int) *UnknownVICError {
	return &UnknownVICError{VIC: vic, Table: table}
}

// MissingKeyError reports a VESA DMT parameter block that lacks a required
// key (or spells it differently than the published block format).
type MissingKeyError struct {
	Key   string
	Block string
}

// Error implements the error interface
func (e *MissingKeyError) Error() string {
	if e.Block != "" {
		return fmt.Sprintf("DMT block %q is missing key %q", e.Block, e.Key)
	}
	return fmt.Sprintf("DMT block is missing key %q", e.Key)
}

// Is implements errors.Is support
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// NewMissingKeyError creates a new MissingKeyError
func NewMissingKeyError(block, key string) *MissingKeyError {
	return &MissingKeyError{Key: key, Block: block}
}

// ParseError reports source table text that cannot be tokenized or whose
// fields do not have the expected form.
type ParseError struct {
	Table   string
	Line    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Line != "" {
		return fmt.Sprintf("%s: %s (row %q)", e.Table, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedTable
}

// NewParseError creates a new ParseError
func NewParseError(table, line, message string) *ParseError {
	return &ParseError{Table: table, Line: line, Message: message}
}
