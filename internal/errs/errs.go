// Package errs defines the tagged error kinds shared across the ingestion,
// parsing, detection, and correlation packages. Low-level failures are
// wrapped at the boundary where they become user or caller visible rather
// than propagating as bare stdlib errors.
package errs

import (
	"errors"
	"fmt"
)

// ValidationKind tags a SecurityValidationFailure with the specific safety
// boundary that rejected the input.
type ValidationKind string

const (
	LineLength  ValidationKind = "line_length"
	JSONDepth   ValidationKind = "json_depth"
	RegexLength ValidationKind = "regex_length"
	RegexSyntax ValidationKind = "regex_syntax"
	RegexReDoS  ValidationKind = "regex_redos"
)

// SecurityValidationError is raised at a validator boundary (line length,
// JSON depth, regex vetting). Callers decide whether to abort or, in the
// JSON parser's case, fold it into a record's parse_errors.
type SecurityValidationError struct {
	Kind    ValidationKind
	Message string
	Fields  map[string]any
}

func (e *SecurityValidationError) Error() string {
	return fmt.Sprintf("validation failure (%s): %s", e.Kind, e.Message)
}

func NewValidationError(kind ValidationKind, msg string, fields map[string]any) *SecurityValidationError {
	return &SecurityValidationError{Kind: kind, Message: msg, Fields: fields}
}

// ConfigurationError is raised at construction time: an unknown strategy
// name, a missing required flag, an unrecognized output mode.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return "configuration error: " + e.Message }

func NewConfigurationError(msg string) *ConfigurationError {
	return &ConfigurationError{Message: msg}
}

// IOFailure wraps a failure opening or reading a source: file-not-found at
// construction, or a transient read error that ends a stream early.
type IOFailure struct {
	Path string
	Err  error
}

func (e *IOFailure) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("io failure on %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("io failure: %v", e.Err)
}

func (e *IOFailure) Unwrap() error { return e.Err }

func NewIOFailure(path string, err error) *IOFailure {
	return &IOFailure{Path: path, Err: err}
}

// ErrNotFound indicates a source's backing path does not exist.
var ErrNotFound = errors.New("source not found")

// AsValidation unwraps err looking for a *SecurityValidationError.
func AsValidation(err error) (*SecurityValidationError, bool) {
	var v *SecurityValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
