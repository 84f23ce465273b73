// Process configuration for box toolpath generation
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package config

import (
	"math"

	"gcodegen-go-migration/pkg/errors"
)

// ProcessConfig holds every parameter of one generation run. It is
// computed once and read-only thereafter.
type ProcessConfig struct {
	// Geometry (mm)
	Length float64 // X extent of the box
	Width  float64 // Y extent of the box
	Height float64 // Z extent of the box

	// Print parameters (mm)
	LayerHeight      float64
	NozzleDiameter   float64
	LineWidth        float64
	FilamentDiameter float64

	// Bed (mm)
	BedSizeX float64
	BedSizeY float64

	// Temperatures (degC)
	ExtruderTemp int
	BedTemp      int

	// Kinematics
	PrintSpeed      float64 // mm/min
	TravelSpeed     float64 // mm/min
	FirstLayerSpeed float64 // mm/min, 0 means same as PrintSpeed
	RetractLength   float64 // mm
	RetractSpeed    float64 // mm/s

	// Structure
	PerimeterCount   int
	InfillPercentage int // 0-100

	// Skirt
	SkirtLines    int
	SkirtDistance float64 // mm from part to innermost skirt line
}

// BedPlacement is the derived centering of the box footprint on the bed.
type BedPlacement struct {
	CenterX float64
	CenterY float64
	StartX  float64 // left edge of the box
	StartY  float64 // front edge of the box
	EndX    float64 // right edge of the box
	EndY    float64 // back edge of the box
}

// Default returns the process configuration the generator was tuned
// with: a 50mm cube on a 215x215 bed with 2.85mm filament.
func Default() *ProcessConfig {
	return &ProcessConfig{
		Length:           50.0,
		Width:            50.0,
		Height:           50.0,
		LayerHeight:      0.2,
		NozzleDiameter:   0.4,
		LineWidth:        0.4,
		FilamentDiameter: 2.85,
		BedSizeX:         215.0,
		BedSizeY:         215.0,
		ExtruderTemp:     210,
		BedTemp:          60,
		PrintSpeed:       1500.0,
		TravelSpeed:      3000.0,
		FirstLayerSpeed:  0,
		RetractLength:    4.5,
		RetractSpeed:     25.0,
		PerimeterCount:   2,
		InfillPercentage: 20,
		SkirtLines:       3,
		SkirtDistance:    5.0,
	}
}

// LoadProcess builds a ProcessConfig from a parsed config file. Missing
// options fall back to Default values; range violations surface as
// ConfigError from the section getters.
func LoadProcess(c *Config) (*ProcessConfig, error) {
	def := Default()
	cfg := &ProcessConfig{}

	box := c.SectionOrDefault("box")
	prn := c.SectionOrDefault("print")
	bed := c.SectionOrDefault("bed")
	skirt := c.SectionOrDefault("skirt")

	var err error
	get := func(dst *float64, s *Section, option string, bounds FloatBounds, fallback float64) {
		if err != nil {
			return
		}
		*dst, err = s.GetFloatWithBounds(option, bounds, fallback)
	}
	getInt := func(dst *int, s *Section, option string, minVal, maxVal *int, fallback int) {
		if err != nil {
			return
		}
		*dst, err = s.GetIntWithBounds(option, minVal, maxVal, fallback)
	}

	above0 := FloatBounds{Above: Float(0)}

	get(&cfg.Length, box, "length", above0, def.Length)
	get(&cfg.Width, box, "width", above0, def.Width)
	get(&cfg.Height, box, "height", above0, def.Height)

	get(&cfg.LayerHeight, prn, "layer_height", above0, def.LayerHeight)
	get(&cfg.NozzleDiameter, prn, "nozzle_diameter", above0, def.NozzleDiameter)
	get(&cfg.LineWidth, prn, "line_width", above0, def.LineWidth)
	get(&cfg.FilamentDiameter, prn, "filament_diameter", above0, def.FilamentDiameter)
	get(&cfg.PrintSpeed, prn, "print_speed", above0, def.PrintSpeed)
	get(&cfg.TravelSpeed, prn, "travel_speed", above0, def.TravelSpeed)
	get(&cfg.FirstLayerSpeed, prn, "first_layer_speed", FloatBounds{MinVal: Float(0)}, 0)
	get(&cfg.RetractLength, prn, "retract_length", FloatBounds{MinVal: Float(0)}, def.RetractLength)
	get(&cfg.RetractSpeed, prn, "retract_speed", above0, def.RetractSpeed)
	getInt(&cfg.PerimeterCount, prn, "perimeter_count", Int(0), nil, def.PerimeterCount)
	getInt(&cfg.InfillPercentage, prn, "infill_percentage", Int(0), Int(100), def.InfillPercentage)
	getInt(&cfg.ExtruderTemp, prn, "extruder_temp", Int(0), nil, def.ExtruderTemp)
	getInt(&cfg.BedTemp, prn, "bed_temp", Int(0), nil, def.BedTemp)

	get(&cfg.BedSizeX, bed, "size_x", above0, def.BedSizeX)
	get(&cfg.BedSizeY, bed, "size_y", above0, def.BedSizeY)

	getInt(&cfg.SkirtLines, skirt, "lines", Int(0), nil, def.SkirtLines)
	get(&cfg.SkirtDistance, skirt, "distance", FloatBounds{MinVal: Float(0)}, def.SkirtDistance)

	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants every generation run relies on.
// Violations are fatal configuration errors; generation must not start.
func (c *ProcessConfig) Validate() error {
	type check struct {
		ok     bool
		option string
		reason string
	}
	checks := []check{
		{c.Length > 0, "length", "must be greater than 0"},
		{c.Width > 0, "width", "must be greater than 0"},
		{c.Height > 0, "height", "must be greater than 0"},
		{c.LayerHeight > 0, "layer_height", "must be greater than 0"},
		{c.NozzleDiameter > 0, "nozzle_diameter", "must be greater than 0"},
		{c.LineWidth > 0, "line_width", "must be greater than 0"},
		{c.FilamentDiameter > 0, "filament_diameter", "must be greater than 0"},
		{c.BedSizeX > 0, "size_x", "must be greater than 0"},
		{c.BedSizeY > 0, "size_y", "must be greater than 0"},
		{c.PrintSpeed > 0, "print_speed", "must be greater than 0"},
		{c.TravelSpeed > 0, "travel_speed", "must be greater than 0"},
		{c.FirstLayerSpeed >= 0, "first_layer_speed", "must be 0 or greater"},
		{c.RetractLength >= 0, "retract_length", "must be 0 or greater"},
		{c.RetractSpeed > 0, "retract_speed", "must be greater than 0"},
		{c.PerimeterCount >= 0, "perimeter_count", "must be 0 or greater"},
		{c.InfillPercentage >= 0 && c.InfillPercentage <= 100, "infill_percentage", "must be between 0 and 100"},
		{c.SkirtLines >= 0, "skirt_lines", "must be 0 or greater"},
		{c.SkirtDistance >= 0, "skirt_distance", "must be 0 or greater"},
	}
	for _, ck := range checks {
		if !ck.ok {
			return errors.ConfigValidationError(ck.option, ck.reason)
		}
	}
	return nil
}

// NumLayers returns the layer count, truncating a partial top layer.
func (c *ProcessConfig) NumLayers() int {
	return int(c.Height / c.LayerHeight)
}

// FirstLayerZ returns the Z height of the first layer.
func (c *ProcessConfig) FirstLayerZ() float64 {
	return c.LayerHeight
}

// EffectiveFirstLayerSpeed returns the first layer speed, falling back
// to the print speed when unset.
func (c *ProcessConfig) EffectiveFirstLayerSpeed() float64 {
	if c.FirstLayerSpeed <= 0 {
		return c.PrintSpeed
	}
	return c.FirstLayerSpeed
}

// RetractFeedrate returns the retract speed converted to mm/min.
func (c *ProcessConfig) RetractFeedrate() float64 {
	return c.RetractSpeed * 60.0
}

// Placement centers the box footprint on the bed. The placement must
// lie fully within [0, BedSizeX] x [0, BedSizeY]; a box that does not
// fit is a configuration error and no commands may be generated.
func (c *ProcessConfig) Placement() (BedPlacement, error) {
	centerX := c.BedSizeX / 2
	centerY := c.BedSizeY / 2
	p := BedPlacement{
		CenterX: centerX,
		CenterY: centerY,
		StartX:  centerX - c.Length/2,
		StartY:  centerY - c.Width/2,
		EndX:    centerX + c.Length/2,
		EndY:    centerY + c.Width/2,
	}
	if p.StartX < 0 || p.StartY < 0 || p.EndX > c.BedSizeX || p.EndY > c.BedSizeY {
		return BedPlacement{}, errors.BedFitError(c.Length, c.Width, c.BedSizeX, c.BedSizeY)
	}
	if math.IsNaN(p.StartX) || math.IsNaN(p.StartY) {
		return BedPlacement{}, errors.BedFitError(c.Length, c.Width, c.BedSizeX, c.BedSizeY)
	}
	return p, nil
}
