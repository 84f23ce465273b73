// Perimeter ring generation
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package toolpath

import (
	"gcodegen-go-migration/pkg/extrusion"
)

// RingBounds returns the bounds of perimeter ring k: the nominal box
// inset by k line widths on all four sides.
func RingBounds(box Rect, k int, lineWidth float64) Rect {
	return box.Inset(float64(k) * lineWidth)
}

// emitRing walks one closed rectangular wall: approach the bottom-left
// corner, then the +X, +Y, -X and -Y edges back to the start. Each
// edge's feed delta is computed from that edge's own length, so the
// ring closes with the feed axis consistent.
func (s *Sequencer) emitRing(bounds Rect, speed float64) ([]Step, error) {
	steps, err := s.approach(bounds.BottomLeft())
	if err != nil {
		return nil, err
	}

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
	return steps, nil
}
