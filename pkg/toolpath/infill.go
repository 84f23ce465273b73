// Infill line generation
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package toolpath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"gcodegen-go-migration/pkg/errors"
	"gcodegen-go-migration/pkg/extrusion"
)

// InfillSpacing returns the Y distance between infill lines. 100%
// infill packs lines at exactly one line width; lower densities spread
// them proportionally.
func InfillSpacing(lineWidth float64, infillPercentage int) float64 {
	if infillPercentage >= 100 {
		return lineWidth
	}
	return lineWidth * (100.0 / float64(infillPercentage))
}

// InfillLeftToRight reports the direction of infill line lineIndex on
// layer layerIndex. Alternating per line and shifting by one each
// layer balances force asymmetry across the part.
func InfillLeftToRight(layerIndex, lineIndex int) bool {
	return (layerIndex+lineIndex)%2 == 0
}

// InfillLineCount returns the number of lines for an interior of the
// given depth, never less than one.
func InfillLineCount(depth, spacing float64) int {
	n := int(depth / spacing)
	if n < 1 {
		return 1
	}
	return n
}

// emitInfill fills the interior of one layer with alternating parallel
// lines. The interior is the nominal box inset past all perimeter
// walls; when that inset leaves no extent the layer keeps its walls
// only and a degenerate-geometry error is returned for the caller to
// log and ignore.
func (s *Sequencer) emitInfill(layerIndex int) ([]Step, error) {
	interior := s.box.Inset(float64(s.cfg.PerimeterCount) * s.cfg.LineWidth)
	if !interior.Valid() {
		return nil, errors.DegenerateGeometryError(layerIndex,
			fmt.Sprintf("infill region has no extent (%.3f x %.3f mm)", interior.Width(), interior.Depth()))
	}

	spacing := InfillSpacing(s.cfg.LineWidth, s.cfg.InfillPercentage)
	count := InfillLineCount(interior.Depth(), spacing)
	lineE := extrusion.Length(interior.Width(),
		s.cfg.LayerHeight, s.cfg.LineWidth, s.cfg.FilamentDiameter)

	var steps []Step
	for i := 0; i < count; i++ {
		y := interior.Min.Y() + float64(i)*spacing
		if y > interior.Max.Y() {
			// spacing rounding pushed the line past the far edge
			break
		}

		from, to := interior.Min.X(), interior.Max.X()
		if !InfillLeftToRight(layerIndex, i) {
			from, to = to, from
		}

		approach, err := s.approach(mgl64.Vec2{from, y})
		if err != nil {
			return nil, err
		}
		steps = append(steps, approach...)

		e, err := s.es.Extrude(lineE)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{
			Op:   OpExtrude,
			Dest: mgl64.Vec2{to, y},
			E:    e,
			Feed: s.cfg.PrintSpeed,
		})
	}
	return steps, nil
}
