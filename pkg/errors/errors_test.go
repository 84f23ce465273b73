// Unit tests for unified error handling
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrConfigValidation, "option 'length': must be greater than 0")
	if got := err.Error(); !strings.HasPrefix(got, "[CONFIG_VALIDATION]") {
		t.Errorf("Error() = %q, want CONFIG_VALIDATION prefix", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := BedFitError(220, 50, 215, 215)
	if !Is(err, ErrConfigBedFit) {
		t.Error("Is should match ErrConfigBedFit")
	}
	if Is(err, ErrConfigValidation) {
		t.Error("Is should not match a different code")
	}
	if !IsConfig(err) {
		t.Error("bed-fit errors are config errors")
	}
}

func TestIsUnwrapsWrappedErrors(t *testing.T) {
	inner := DegenerateGeometryError(7, "no interior extent")
	wrapped := fmt.Errorf("layer generation: %w", inner)
	if !Is(wrapped, ErrGeometryDegenerate) {
		t.Error("Is should see through fmt.Errorf wrapping")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := EmitError(cause, "writing g-code output")
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause lost")
	}
	if !Is(err, ErrGCodeEmit) {
		t.Error("wrong code")
	}
}

func TestContext(t *testing.T) {
	err := DegenerateGeometryError(3, "no interior extent")
	if err.Context["layer"] != 3 {
		t.Errorf("context layer = %v, want 3", err.Context["layer"])
	}
}
