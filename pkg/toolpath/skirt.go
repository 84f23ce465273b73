// Skirt generation
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package toolpath

import (
	"fmt"

	"gcodegen-go-migration/pkg/extrusion"
)

// SkirtBounds returns the bounds of skirt line n: the nominal box
// offset outward by the skirt distance plus n line widths.
func SkirtBounds(box Rect, n int, skirtDistance, lineWidth float64) Rect {
	return box.Outset(skirtDistance + float64(n)*lineWidth)
}

// emitSkirt draws the sacrificial outlines around the part before
// layer 0, priming the nozzle. Travels between skirt lines are bare:
// the skirt is one continuous deposition sequence. The trailing
// retract is deliberately left without a prime, because the first
// perimeter approach is itself exempt from retraction; the canonical
// feed total therefore never regains this retract length.
func (s *Sequencer) emitSkirt() ([]Step, error) {
	steps := []Step{{Op: OpComment, Comment: "skirt (purge/prime)"}}
	speed := s.cfg.EffectiveFirstLayerSpeed()

	for n := 0; n < s.cfg.SkirtLines; n++ {
		bounds := SkirtBounds(s.box, n, s.cfg.SkirtDistance, s.cfg.LineWidth)
		steps = append(steps,
			Step{Op: OpComment, Comment: fmt.Sprintf("skirt line %d", n+1)},
			Step{
				Op:   OpTravel,
				Dest: bounds.BottomLeft(),
				Z:    s.cfg.FirstLayerZ(),
				HasZ: true,
				Feed: s.cfg.TravelSpeed,
			})

		corners := bounds.Corners()
		prev := corners[0]
		for _, pt := range [...]int{1, 2, 3, 0} {
			dest := corners[pt]
			delta := extrusion.Length(dest.Sub(prev).Len(),
				s.cfg.LayerHeight, s.cfg.LineWidth, s.cfg.FilamentDiameter)
			e, err := s.es.Extrude(delta)
			if err != nil {
				return nil, err
			}
			steps = append(steps, Step{Op: OpExtrude, Dest: dest, E: e, Feed: speed})
			prev = dest
		}
	}

	retract, err := s.retractStep()
	if err != nil {
		return nil, err
	}
	steps = append(steps, retract, Step{Op: OpBlank})
	return steps, nil
}
