// Package errors provides domain-specific error types for the bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrNotBootstrapped is returned when an operation needs the host bootstrap
// lookup before the host has supplied it.
var ErrNotBootstrapped = stdErrors.New("host bootstrap lookup is not set")

// Class groups errors by how a batch reacts to them.
type Class string

const (
	// ClassStructural aborts the whole batch (missing bootstrap, unresolved op).
	ClassStructural Class = "structural"

	// ClassInvalidInput is raised before any native call is made.
	ClassInvalidInput Class = "invalid_input"

	// ClassItem covers one failed item of a best-effort batch.
	ClassItem Class = "item"

	// ClassConfig covers configuration loading and validation.
	ClassConfig Class = "config"

	// ClassInternal is everything else.
	ClassInternal Class = "internal"
)

// ClassifiedError is implemented by error types that know their Class.
// New error types only need to implement this interface to be classified.
type ClassifiedError interface {
	error
	Class() Class
}

// Classify returns the Class of err, walking its wrap chain.
// It returns "" for a nil error.
func Classify(err error) Class {
	if err == nil {
		return ""
	}
	if stdErrors.Is(err, ErrNotBootstrapped) {
		return ClassStructural
	}
	var ce ClassifiedError
	if stdErrors.As(err, &ce) {
		return ce.Class()
	}
	return ClassInternal
}

// IsStructural reports whether err aborts a whole batch.
func IsStructural(err error) bool {
	return Classify(err) == ClassStructural
}

// ResolveError represents a named host operation the bootstrap lookup could
// not provide.
type ResolveError struct {
	Err  error
	Name string
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %s: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("resolve %s: host returned no entry point", e.Name)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Class implements ClassifiedError.
func (e *ResolveError) Class() Class {
	return ClassStructural
}

// InvalidInputError represents an argument rejected before any native call.
type InvalidInputError struct {
	Op     string
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: invalid %s: %s", e.Op, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Class implements ClassifiedError.
func (e *InvalidInputError) Class() Class {
	return ClassInvalidInput
}

// ItemError represents one failed item of a best-effort batch.
type ItemError struct {
	Op     string
	Reason string
	Index  int
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s item %d: %s", e.Op, e.Index, e.Reason)
}

// Class implements ClassifiedError.
func (e *ItemError) Class() Class {
	return ClassItem
}

// SignatureError represents an attempt to bind an entry point to a Go
// function type that differs from the one the host publishes for it.
type SignatureError struct {
	Name string
	Want string
	Got  string
}

func (e *SignatureError) Error() string {
	if e.Want == "" {
		return fmt.Sprintf("signature for %s: operation is not in the catalog", e.Name)
	}
	return fmt.Sprintf("signature for %s: want %s, got %s", e.Name, e.Want, e.Got)
}

// Class implements ClassifiedError.
func (e *SignatureError) Class() Class {
	return ClassStructural
}

// BindError represents a failure to turn a resolved address into a callable.
type BindError struct {
	Err  error
	Name string
}

func (e *BindError) Error() string {
	return fmt.Sprintf("bind %s: %v", e.Name, e.Err)
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// Class implements ClassifiedError.
func (e *BindError) Class() Class {
	return ClassStructural
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Class implements ClassifiedError.
func (e *ConfigError) Class() Class {
	return ClassConfig
}
