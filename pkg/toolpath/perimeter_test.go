// Unit tests for perimeter ring generation
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package toolpath

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gcodegen-go-migration/pkg/config"
	"gcodegen-go-migration/pkg/extrusion"
)

func newTestSequencer(t *testing.T, cfg *config.ProcessConfig) *Sequencer {
	t.Helper()
	s, err := NewSequencer(cfg)
	require.NoError(t, err)
	return s
}

func TestRingBoundsInsetExactness(t *testing.T) {
	box := NewRect(82.5, 82.5, 132.5, 132.5)
	lw := 0.4
	for k := 0; k < 4; k++ {
		r := RingBounds(box, k, lw)
		inset := float64(k) * lw
		assert.Equal(t, box.Min.X()+inset, r.Min.X(), "ring %d min x", k)
		assert.Equal(t, box.Min.Y()+inset, r.Min.Y(), "ring %d min y", k)
		assert.Equal(t, box.Max.X()-inset, r.Max.X(), "ring %d max x", k)
		assert.Equal(t, box.Max.Y()-inset, r.Max.Y(), "ring %d max y", k)
	}
}

func TestRingCornersFormClosedLoop(t *testing.T) {
	r := NewRect(10, 20, 40, 50)
	corners := r.Corners()

	// Sum of signed edge vectors around the loop is exactly zero.
	sum := mgl64.Vec2{}
	prev := corners[0]
	for _, idx := range [...]int{1, 2, 3, 0} {
		sum = sum.Add(corners[idx].Sub(prev))
		prev = corners[idx]
	}
	assert.Equal(t, mgl64.Vec2{0, 0}, sum)
	assert.Equal(t, 120.0, r.Perimeter())
}

func TestEmitRingFirstMoveIsBareTravel(t *testing.T) {
	s := newTestSequencer(t, config.Default())
	ring := RingBounds(s.box, 0, s.cfg.LineWidth)
	steps, err := s.emitRing(ring, s.cfg.PrintSpeed)
	require.NoError(t, err)

	// Very first move of the job: travel without a retract/prime pair.
	require.Len(t, steps, 5)
	assert.Equal(t, OpTravel, steps[0].Op)
	assert.Equal(t, ring.BottomLeft(), steps[0].Dest)
	for i := 1; i < 5; i++ {
		assert.Equal(t, OpExtrude, steps[i].Op, "step %d", i)
	}
	// The loop returns to its starting corner.
	assert.Equal(t, ring.BottomLeft(), steps[4].Dest)
}

func TestEmitRingEdgeExtrusionDeltas(t *testing.T) {
	cfg := config.Default()
	s := newTestSequencer(t, cfg)
	ring := RingBounds(s.box, 1, cfg.LineWidth)
	steps, err := s.emitRing(ring, cfg.PrintSpeed)
	require.NoError(t, err)

	edgeX := extrusion.Length(ring.Width(), cfg.LayerHeight, cfg.LineWidth, cfg.FilamentDiameter)
	edgeY := extrusion.Length(ring.Depth(), cfg.LayerHeight, cfg.LineWidth, cfg.FilamentDiameter)

	// +X, +Y, -X, -Y: each edge's delta from its own length.
	wantE := []float64{edgeX, edgeX + edgeY, 2*edgeX + edgeY, 2*edgeX + 2*edgeY}
	for i, want := range wantE {
		assert.InDelta(t, want, steps[i+1].E, 1e-12, "edge %d feed target", i)
	}
}

func TestEmitRingRetractBracketWhenInMotion(t *testing.T) {
	cfg := config.Default()
	s := newTestSequencer(t, cfg)
	_, err := s.emitRing(RingBounds(s.box, 0, cfg.LineWidth), cfg.PrintSpeed)
	require.NoError(t, err)
	require.Equal(t, extrusion.ToolInMotion, s.es.Tool())

	steps, err := s.emitRing(RingBounds(s.box, 1, cfg.LineWidth), cfg.PrintSpeed)
	require.NoError(t, err)

	// Entry into a later ring: retract, travel, prime, then the edges.
	require.Len(t, steps, 7)
	assert.Equal(t, OpFeed, steps[0].Op)
	assert.Equal(t, "retract", steps[0].Comment)
	assert.Equal(t, OpTravel, steps[1].Op)
	assert.Equal(t, OpFeed, steps[2].Op)
	assert.Equal(t, "prime", steps[2].Comment)

	// Retract dips below canonical by exactly the retract length and
	// the prime lands above it by the same amount.
	assert.InDelta(t, steps[2].E-steps[0].E, 2*cfg.RetractLength, 1e-12)
}

func TestEmitRingSpeeds(t *testing.T) {
	cfg := config.Default()
	cfg.FirstLayerSpeed = 900
	s := newTestSequencer(t, cfg)

	steps, err := s.emitRing(RingBounds(s.box, 0, cfg.LineWidth), cfg.EffectiveFirstLayerSpeed())
	require.NoError(t, err)
	for _, st := range steps[1:] {
		assert.Equal(t, 900.0, st.Feed)
	}
}
