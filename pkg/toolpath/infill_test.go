// Unit tests for infill line generation
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package toolpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gcodegen-go-migration/pkg/config"
	"gcodegen-go-migration/pkg/errors"
)

func TestInfillSpacing(t *testing.T) {
	assert.Equal(t, 2.0, InfillSpacing(0.4, 20), "20 percent infill spreads lines 5x apart")
	assert.Equal(t, 0.4, InfillSpacing(0.4, 100), "solid infill packs at line width")
	assert.Equal(t, 0.4, InfillSpacing(0.4, 150), "over-100 clamps to solid")
	assert.Equal(t, 4.0, InfillSpacing(0.4, 10))
}

func TestInfillLineCount(t *testing.T) {
	// 40mm interior at 20% with 0.4 line width: spacing 2.0, 20 lines.
	assert.Equal(t, 20, InfillLineCount(40, InfillSpacing(0.4, 20)))
	assert.Equal(t, 1, InfillLineCount(1.0, 2.0), "never less than one line")
	assert.Equal(t, 100, InfillLineCount(40, 0.4))
}

func TestInfillDirectionAlternates(t *testing.T) {
	assert.True(t, InfillLeftToRight(0, 0))
	assert.False(t, InfillLeftToRight(0, 1))
	assert.True(t, InfillLeftToRight(0, 2))
	// Shifts by one each layer.
	assert.False(t, InfillLeftToRight(1, 0))
	assert.True(t, InfillLeftToRight(1, 1))
}

// infillConfig gives a 40mm-deep interior: the box is 41.6mm wide and
// two 0.4mm perimeters inset 0.8mm per side.
func infillConfig() *config.ProcessConfig {
	cfg := config.Default()
	cfg.Length = 41.6
	cfg.Width = 41.6
	return cfg
}

func TestEmitInfillLineCountAndDirections(t *testing.T) {
	cfg := infillConfig()
	s := newTestSequencer(t, cfg)
	steps, err := s.emitInfill(0)
	require.NoError(t, err)

	interior := s.box.Inset(float64(cfg.PerimeterCount) * cfg.LineWidth)
	assert.InDelta(t, 40.0, interior.Depth(), 1e-9)

	var extrudes []Step
	for _, st := range steps {
		if st.Op == OpExtrude {
			extrudes = append(extrudes, st)
		}
	}
	require.Len(t, extrudes, 20)

	for i, st := range extrudes {
		wantY := interior.Min.Y() + float64(i)*2.0
		assert.InDelta(t, wantY, st.Dest.Y(), 1e-9, "line %d y position", i)
		if InfillLeftToRight(0, i) {
			assert.Equal(t, interior.Max.X(), st.Dest.X(), "line %d should run left to right", i)
		} else {
			assert.Equal(t, interior.Min.X(), st.Dest.X(), "line %d should run right to left", i)
		}
		assert.Equal(t, cfg.PrintSpeed, st.Feed)
	}
}

func TestEmitInfillLinesStayInsideInterior(t *testing.T) {
	cfg := infillConfig()
	s := newTestSequencer(t, cfg)
	steps, err := s.emitInfill(3)
	require.NoError(t, err)

	interior := s.box.Inset(float64(cfg.PerimeterCount) * cfg.LineWidth)
	for _, st := range steps {
		if st.Op != OpExtrude {
			continue
		}
		assert.LessOrEqual(t, st.Dest.Y(), interior.Max.Y())
		assert.GreaterOrEqual(t, st.Dest.Y(), interior.Min.Y())
	}
}

func TestEmitInfillEveryLineRetractsOnceMoving(t *testing.T) {
	cfg := infillConfig()
	s := newTestSequencer(t, cfg)
	// Deposit something first so the tool is in motion.
	_, err := s.emitRing(RingBounds(s.box, 0, cfg.LineWidth), cfg.PrintSpeed)
	require.NoError(t, err)

	steps, err := s.emitInfill(0)
	require.NoError(t, err)

	retracts, primes := 0, 0
	for _, st := range steps {
		if st.Op != OpFeed {
			continue
		}
		switch st.Comment {
		case "retract":
			retracts++
		case "prime":
			primes++
		}
	}
	assert.Equal(t, 20, retracts)
	assert.Equal(t, 20, primes)
}

func TestEmitInfillDegenerateInterior(t *testing.T) {
	cfg := config.Default()
	cfg.Length = 1.0
	cfg.Width = 1.0 // two 0.4mm perimeters leave a negative interior
	s := newTestSequencer(t, cfg)

	steps, err := s.emitInfill(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrGeometryDegenerate), "got %v", err)
	assert.Empty(t, steps)
}
