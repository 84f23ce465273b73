// Unified error handling for the G-code generator
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents the category of error
type ErrorCode string

const (
	// Configuration errors
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"
	ErrConfigBedFit     ErrorCode = "CONFIG_BED_FIT"

	// Geometry errors
	ErrGeometryDegenerate ErrorCode = "GEOMETRY_DEGENERATE"

	// Extrusion accounting errors
	ErrExtrusionState ErrorCode = "EXTRUSION_STATE"

	// Output errors
	ErrGCodeEmit ErrorCode = "GCODE_EMIT"
)

// PrintError is the unified error type for the generator
type PrintError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Err wraps the underlying error
	Err error

	// Context provides additional context
	Context map[string]interface{}
}

// Error implements the error interface
func (e *PrintError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PrintError) Unwrap() error {
	return e.Err
}

// SetContext adds additional context
func (e *PrintError) SetContext(key string, value interface{}) *PrintError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new PrintError
func New(code ErrorCode, message string) *PrintError {
	return &PrintError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, code ErrorCode, message string) *PrintError {
	return &PrintError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ConfigValidationError creates an error for an invalid configuration value
func ConfigValidationError(option string, reason string) *PrintError {
	return New(ErrConfigValidation, fmt.Sprintf("option '%s': %s", option, reason)).
		SetContext("option", option)
}

// BedFitError creates an error for a part footprint that does not fit the bed
func BedFitError(length, width, bedX, bedY float64) *PrintError {
	return New(ErrConfigBedFit,
		fmt.Sprintf("box does not fit on the bed: box %gx%gmm, bed %gx%gmm", length, width, bedX, bedY)).
		SetContext("box", fmt.Sprintf("%gx%g", length, width)).
		SetContext("bed", fmt.Sprintf("%gx%g", bedX, bedY))
}

// DegenerateGeometryError creates an error for an interior region with no extent
func DegenerateGeometryError(layer int, message string) *PrintError {
	return New(ErrGeometryDegenerate, message).SetContext("layer", layer)
}

// ExtrusionStateError creates an error for an invalid feed-axis operation
func ExtrusionStateError(message string) *PrintError {
	return New(ErrExtrusionState, message)
}

// EmitError creates an error for a G-code output failure
func EmitError(err error, message string) *PrintError {
	return Wrap(err, ErrGCodeEmit, message)
}

// Is checks if error matches the given error code, unwrapping as needed
func Is(err error, code ErrorCode) bool {
	var pe *PrintError
	if stderrors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

// IsConfig checks if error is a configuration error
func IsConfig(err error) bool {
	return Is(err, ErrConfigValidation) || Is(err, ErrConfigBedFit)
}
