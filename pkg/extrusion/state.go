// Feed-axis state tracking
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package extrusion

import (
	"fmt"

	"gcodegen-go-migration/pkg/errors"
)

// ToolState describes what the tool is doing with respect to the feed
// axis. Modeling this explicitly (instead of checking "is this the
// first move" at every call site) is what keeps the first travel of a
// job from emitting a spurious retract/prime pair.
type ToolState string

const (
	// ToolAtRest: nothing deposited yet; travels need no retraction.
	ToolAtRest ToolState = "at_rest"

	// ToolInMotion: filament at the nozzle; travels must retract first.
	ToolInMotion ToolState = "in_motion"

	// ToolRetracted: a retract was commanded and not yet primed back.
	ToolRetracted ToolState = "retracted"
)

// State is the cumulative commanded feed-axis position. The canonical
// position only counts truly deposited material: a retract emits a
// command target below it without mutating it, and the matching prime
// advances it back so the round trip is symmetric around the same
// canonical value.
//
// State is owned exclusively by the layer sequencer for the duration of
// a run; it is the single piece of mutable state in the core.
type State struct {
	position float64
	tool     ToolState
}

// NewState returns a feed-axis tracker at position 0 with the tool at
// rest.
func NewState() *State {
	return &State{tool: ToolAtRest}
}

// Position returns the canonical feed position.
func (s *State) Position() float64 {
	return s.position
}

// Tool returns the current tool state.
func (s *State) Tool() ToolState {
	return s.tool
}

// Extrude advances the canonical position by delta and returns the new
// absolute position, the value to emit as the feed-axis target.
func (s *State) Extrude(delta float64) (float64, error) {
	if delta < 0 {
		return 0, errors.ExtrusionStateError(fmt.Sprintf("extrude delta must be >= 0, got %g", delta))
	}
	s.position += delta
	s.tool = ToolInMotion
	return s.position, nil
}

// Retract returns the command target for withdrawing the filament by
// retractLength. The canonical position is deliberately not changed:
// it represents material truly deposited, and the following Prime
// restores the feed axis to it.
func (s *State) Retract(retractLength float64) (float64, error) {
	if s.tool == ToolRetracted {
		return 0, errors.ExtrusionStateError("retract while already retracted")
	}
	s.tool = ToolRetracted
	return s.position - retractLength, nil
}

// Prime advances the canonical position by retractLength, undoing the
// preceding Retract, and returns the new absolute position. Priming
// without a pending retract compounds later extrude deltas on a stale
// baseline, so it is rejected.
func (s *State) Prime(retractLength float64) (float64, error) {
	if s.tool != ToolRetracted {
		return 0, errors.ExtrusionStateError("prime without a preceding retract")
	}
	s.position += retractLength
	s.tool = ToolInMotion
	return s.position, nil
}
