// Toolpath step and layer model
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package toolpath converts box dimensions and process parameters into
// an ordered list of motion steps with extrusion accounting. It owns
// the perimeter ring, infill and skirt generators and the layer
// sequencer that drives them.
package toolpath

import "github.com/go-gl/mathgl/mgl64"

// Op is the kind of a toolpath step.
type Op int

const (
	// OpTravel is a non-depositing XY move (optionally carrying Z).
	OpTravel Op = iota

	// OpExtrude is a depositing XY move with an absolute feed target.
	OpExtrude

	// OpZMove is a Z-only move.
	OpZMove

	// OpFeed is a feed-axis-only move (retract or prime).
	OpFeed

	// OpComment is an annotation line.
	OpComment

	// OpBlank is an empty separator line.
	OpBlank
)

// Step is one motion or annotation decision. The start point is
// implicit from the prior step; steps are produced, rendered once and
// discarded.
type Step struct {
	Op      Op
	Dest    mgl64.Vec2 // XY target for OpTravel / OpExtrude
	Z       float64    // Z target for OpZMove, or travel Z when HasZ
	HasZ    bool       // OpTravel only: include Z in the command
	E       float64    // absolute feed target for OpExtrude / OpFeed
	Feed    float64    // feedrate in mm/min
	Comment string
}

// Layer is the ordered step sequence of one layer: perimeters followed
// by infill. Never mutated after emission.
type Layer struct {
	Index int
	Z     float64
	Steps []Step
}

// Program is the complete ordered output of one run: skirt prologue,
// all layers, and the closing lift/park moves. Printer boilerplate
// (units, heating, homing) is the emitter's concern.
type Program struct {
	Skirt   []Step
	Layers  []Layer
	Closing []Step
}

// Summary reports run totals back to the caller. It is not part of the
// command stream.
type Summary struct {
	NumLayers int
	FinalE    float64
}

// Rect is an axis-aligned rectangle, Min the bottom-left corner and
// Max the top-right.
type Rect struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewRect builds a Rect from corner coordinates.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{Min: mgl64.Vec2{minX, minY}, Max: mgl64.Vec2{maxX, maxY}}
}

// Inset shrinks the rectangle by d on all four sides.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Min: mgl64.Vec2{r.Min.X() + d, r.Min.Y() + d},
		Max: mgl64.Vec2{r.Max.X() - d, r.Max.Y() - d},
	}
}

// Outset grows the rectangle by d on all four sides.
func (r Rect) Outset(d float64) Rect {
	return r.Inset(-d)
}

// Width returns the X extent.
func (r Rect) Width() float64 {
	return r.Max.X() - r.Min.X()
}

// Depth returns the Y extent.
func (r Rect) Depth() float64 {
	return r.Max.Y() - r.Min.Y()
}

// Valid reports whether the rectangle has positive extent on both axes.
func (r Rect) Valid() bool {
	return r.Width() > 0 && r.Depth() > 0
}

// Perimeter returns the total length of the rectangle outline.
func (r Rect) Perimeter() float64 {
	return 2*r.Width() + 2*r.Depth()
}

// BottomLeft returns the starting corner for ring traversal.
func (r Rect) BottomLeft() mgl64.Vec2 {
	return r.Min
}

// Corners returns the corners in traversal order: bottom-left,
// bottom-right, top-right, top-left.
func (r Rect) Corners() [4]mgl64.Vec2 {
	return [4]mgl64.Vec2{
		{r.Min.X(), r.Min.Y()},
		{r.Max.X(), r.Min.Y()},
		{r.Max.X(), r.Max.Y()},
		{r.Min.X(), r.Max.Y()},
	}
}
