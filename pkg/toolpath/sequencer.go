// Layer sequencer
//
// Drives perimeter, infill and skirt generation across all layers,
// consulting the feed-axis tracker before every move that touches it.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package toolpath

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"gcodegen-go-migration/pkg/config"
	"gcodegen-go-migration/pkg/errors"
	"gcodegen-go-migration/pkg/extrusion"
	"gcodegen-go-migration/pkg/log"
)

// SequencerState is the phase of the layer state machine.
type SequencerState string

const (
	// StateEnteringLayer brackets the Z move with retract/prime.
	StateEnteringLayer SequencerState = "entering_layer"

	// StatePerimeters walks all rings, outer wall first.
	StatePerimeters SequencerState = "perimeters"

	// StateInfill fills the interior of non-top layers.
	StateInfill SequencerState = "infill"

	// StateDone is reached after the closing lift and park.
	StateDone SequencerState = "done"
)

// Sequencer generates the toolpath for one box. It exclusively owns
// the extrusion state for the duration of the run; generation is fully
// sequential because each layer's feed targets depend on the cumulative
// position left by the previous one.
type Sequencer struct {
	cfg    *config.ProcessConfig
	bed    config.BedPlacement
	box    Rect
	es     *extrusion.State
	state  SequencerState
	logger *log.Logger
}

// NewSequencer validates the configuration, places the box on the bed
// and prepares a run. Configuration errors are returned before any
// command is produced.
func NewSequencer(cfg *config.ProcessConfig) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bed, err := cfg.Placement()
	if err != nil {
		return nil, err
	}
	return &Sequencer{
		cfg:    cfg,
		bed:    bed,
		box:    NewRect(bed.StartX, bed.StartY, bed.EndX, bed.EndY),
		es:     extrusion.NewState(),
		state:  StateEnteringLayer,
		logger: log.Default().WithPrefix("sequencer"),
	}, nil
}

// State returns the current phase of the layer state machine.
func (s *Sequencer) State() SequencerState {
	return s.state
}

// Run produces the complete program and its summary.
func (s *Sequencer) Run() (*Program, Summary, error) {
	numLayers := s.cfg.NumLayers()
	s.logger.InfoFields("generating toolpath", log.Fields{
		"box":    fmt.Sprintf("%gx%gx%g", s.cfg.Length, s.cfg.Width, s.cfg.Height),
		"layers": numLayers,
	})

	p := &Program{}
	if s.cfg.SkirtLines > 0 {
		skirt, err := s.emitSkirt()
		if err != nil {
			return nil, Summary{}, err
		}
		p.Skirt = skirt
	}

	for i := 0; i < numLayers; i++ {
		layer, err := s.emitLayer(i, numLayers)
		if err != nil {
			return nil, Summary{}, err
		}
		p.Layers = append(p.Layers, layer)
	}

	p.Closing = s.emitClosing()
	s.state = StateDone

	summary := Summary{NumLayers: numLayers, FinalE: s.es.Position()}
	s.logger.InfoFields("toolpath complete", log.Fields{
		"layers":  summary.NumLayers,
		"final_e": fmt.Sprintf("%.2f", summary.FinalE),
	})
	return p, summary, nil
}

// emitLayer runs the state machine for one layer: enter (Z move with
// retract/prime bracket), perimeters outer-first, then infill on every
// layer but the last.
func (s *Sequencer) emitLayer(index, numLayers int) (Layer, error) {
	s.state = StateEnteringLayer
	z := float64(index+1) * s.cfg.LayerHeight
	steps := []Step{{
		Op:      OpComment,
		Comment: fmt.Sprintf("layer %d / %d (Z = %.3f mm)", index+1, numLayers, z),
	}}

	// Layer 0 is already at height from the start sequence. Every
	// later Z move is retraction-worthy travel.
	if index > 0 {
		retract, err := s.retractStep()
		if err != nil {
			return Layer{}, err
		}
		steps = append(steps, retract, Step{
			Op:      OpZMove,
			Z:       z,
			Feed:    s.cfg.TravelSpeed,
			Comment: "move to layer height",
		})
		prime, err := s.primeStep()
		if err != nil {
			return Layer{}, err
		}
		steps = append(steps, prime)
	}

	s.state = StatePerimeters
	speed := s.cfg.PrintSpeed
	if index == 0 {
		speed = s.cfg.EffectiveFirstLayerSpeed()
	}
	for k := 0; k < s.cfg.PerimeterCount; k++ {
		ring, err := s.emitRing(RingBounds(s.box, k, s.cfg.LineWidth), speed)
		if err != nil {
			return Layer{}, err
		}
		steps = append(steps, ring...)
	}

	// The top layer stays perimeter-only.
	if index < numLayers-1 && s.cfg.InfillPercentage > 0 {
		s.state = StateInfill
		infill, err := s.emitInfill(index)
		if err != nil {
			if !errors.Is(err, errors.ErrGeometryDegenerate) {
				return Layer{}, err
			}
			s.logger.DebugFields("skipping infill", log.Fields{
				"layer": index, "reason": err.Error(),
			})
		}
		steps = append(steps, infill...)
	}

	steps = append(steps, Step{Op: OpBlank})
	return Layer{Index: index, Z: z, Steps: steps}, nil
}

// emitClosing lifts the nozzle clear of the part and parks over the
// bed center.
func (s *Sequencer) emitClosing() []Step {
	return []Step{
		{Op: OpComment, Comment: "end position"},
		{Op: OpZMove, Z: s.cfg.Height + 5, Feed: s.cfg.TravelSpeed, Comment: "lift nozzle"},
		{Op: OpTravel, Dest: mgl64.Vec2{s.bed.CenterX, s.bed.CenterY}, Feed: s.cfg.TravelSpeed, Comment: "move to center"},
		{Op: OpBlank},
	}
}

// approach moves to dest without depositing. A tool in motion gets the
// retract/travel/prime bracket; a tool at rest (start of job) or
// already retracted (after the skirt) travels bare.
func (s *Sequencer) approach(dest mgl64.Vec2) ([]Step, error) {
	travel := Step{Op: OpTravel, Dest: dest, Feed: s.cfg.TravelSpeed}
	if s.es.Tool() != extrusion.ToolInMotion {
		return []Step{travel}, nil
	}

	retract, err := s.retractStep()
	if err != nil {
		return nil, err
	}
	prime, err := s.primeStep()
	if err != nil {
		return nil, err
	}
	return []Step{retract, travel, prime}, nil
}

// retractStep withdraws the filament ahead of a travel move.
func (s *Sequencer) retractStep() (Step, error) {
	e, err := s.es.Retract(s.cfg.RetractLength)
	if err != nil {
		return Step{}, err
	}
	return Step{Op: OpFeed, E: e, Feed: s.cfg.RetractFeedrate(), Comment: "retract"}, nil
}

// primeStep re-advances the filament after a travel move.
func (s *Sequencer) primeStep() (Step, error) {
	e, err := s.es.Prime(s.cfg.RetractLength)
	if err != nil {
		return Step{}, err
	}
	return Step{Op: OpFeed, E: e, Feed: s.cfg.RetractFeedrate(), Comment: "prime"}, nil
}
