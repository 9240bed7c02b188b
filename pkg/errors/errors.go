// Package errors provides custom error types for the syncguard system.
// These errors enable programmatic error checking and keep detector and
// cache faults distinguishable from genuine caller mistakes.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the syncguard system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrCacheUnavailable indicates the cache backend could not serve a
	// request; detection degrades to always-miss rather than failing
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrDetectorFault indicates a detector failed while inspecting a
	// record pair; the engine treats this as "no conflict produced"
	ErrDetectorFault = errors.New("detector fault")

	// ErrUnknownConflictType indicates a conflict type that is not part
	// of the registered set was requested
	ErrUnknownConflictType = errors.New("unknown conflict type")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// DetectorError represents a fault inside a single detector for a single
// record pair. It never aborts a detection run.
type DetectorError struct {
	Detector string
	ItemID   string
	Err      error
}

// Error implements the error interface
func (e *DetectorError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("detector %s failed on item %s: %v", e.Detector, e.ItemID, e.Err)
	}
	return fmt.Sprintf("detector %s failed: %v", e.Detector, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DetectorError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *DetectorError) Is(target error) bool {
	return target == ErrDetectorFault
}

// NewDetectorError creates a new DetectorError
func NewDetectorError(detector, itemID string, err error) *DetectorError {
	return &DetectorError{Detector: detector, ItemID: itemID, Err: err}
}

// CacheError represents a cache backend failure
type CacheError struct {
	Operation string // "get", "set", "cleanup"
	Key       string
	Err       error
}

// Error implements the error interface
func (e *CacheError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("cache %s failed for key %s: %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("cache %s failed: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *CacheError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *CacheError) Is(target error) bool {
	return target == ErrCacheUnavailable
}

// NewCacheError creates a new CacheError
func NewCacheError(operation, key string, err error) *CacheError {
	return &CacheError{Operation: operation, Key: key, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing snapshot data
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file, message string, err error) *ParseError {
	return &ParseError{Format: format, File: file, Message: message, Err: err}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsDetectorFault checks if an error is a detector fault
func IsDetectorFault(err error) bool {
	return errors.Is(err, ErrDetectorFault)
}

// IsCacheUnavailable checks if an error indicates cache unavailability
func IsCacheUnavailable(err error) bool {
	return errors.Is(err, ErrCacheUnavailable)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
