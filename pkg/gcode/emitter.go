// G-code command emission
//
// Renders toolpath steps and fixed printer boilerplate into the
// motion-command text format understood by printer firmware and
// slicer visualizers.
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package gcode

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"gcodegen-go-migration/pkg/config"
	"gcodegen-go-migration/pkg/errors"
	"gcodegen-go-migration/pkg/toolpath"
)

// FormatStep renders one toolpath step as a single G-code line.
// Coordinates use 3 decimal places, feed targets 4, feedrates are
// integral. An OpComment step becomes a standalone comment line and an
// OpBlank an empty line; consumers treat both as non-semantic.
func FormatStep(st toolpath.Step) string {
	switch st.Op {
	case toolpath.OpTravel:
		if st.HasZ {
			return withComment(fmt.Sprintf("G1 X%.3f Y%.3f Z%.3f F%d",
				st.Dest.X(), st.Dest.Y(), st.Z, feedInt(st.Feed)), st.Comment)
		}
		return withComment(fmt.Sprintf("G1 X%.3f Y%.3f F%d",
			st.Dest.X(), st.Dest.Y(), feedInt(st.Feed)), st.Comment)
	case toolpath.OpExtrude:
		return withComment(fmt.Sprintf("G1 X%.3f Y%.3f E%.4f F%d",
			st.Dest.X(), st.Dest.Y(), st.E, feedInt(st.Feed)), st.Comment)
	case toolpath.OpZMove:
		return withComment(fmt.Sprintf("G1 Z%.3f F%d", st.Z, feedInt(st.Feed)), st.Comment)
	case toolpath.OpFeed:
		return withComment(fmt.Sprintf("G1 E%.4f F%d", st.E, feedInt(st.Feed)), st.Comment)
	case toolpath.OpComment:
		return "; " + st.Comment
	case toolpath.OpBlank:
		return ""
	}
	return ""
}

func feedInt(f float64) int {
	return int(math.Round(f))
}

func withComment(cmd, comment string) string {
	if comment == "" {
		return cmd
	}
	return cmd + " ; " + comment
}

// StartSequence returns the header comments and fixed start-of-print
// boilerplate: units, positioning modes, homing, heating, extruder
// reset, the travel to the start corner and the fan command.
func StartSequence(cfg *config.ProcessConfig, bed config.BedPlacement) []string {
	return []string{
		"; G-code for a rectangular box",
		fmt.Sprintf("; dimensions: %gx%gx%g mm", cfg.Length, cfg.Width, cfg.Height),
		fmt.Sprintf("; centered on bed: %gx%g mm", cfg.BedSizeX, cfg.BedSizeY),
		fmt.Sprintf("; layer height: %g mm", cfg.LayerHeight),
		fmt.Sprintf("; nozzle: %g mm", cfg.NozzleDiameter),
		fmt.Sprintf("; layers: %d", cfg.NumLayers()),
		"",
		"; initialization",
		"G21 ; set units to millimeters",
		"G90 ; absolute positioning",
		"M82 ; absolute extrusion mode",
		"",
		"; home all axes",
		"G28 ; home X, Y, Z",
		"",
		"; prepare printer",
		fmt.Sprintf("M104 S%d ; set extruder temperature", cfg.ExtruderTemp),
		fmt.Sprintf("M140 S%d ; set bed temperature", cfg.BedTemp),
		fmt.Sprintf("M109 S%d ; wait for extruder temperature", cfg.ExtruderTemp),
		fmt.Sprintf("M190 S%d ; wait for bed temperature", cfg.BedTemp),
		"",
		"; prepare extruder",
		"G92 E0 ; reset extruder",
		fmt.Sprintf("G1 F%d ; set feedrate", feedInt(cfg.PrintSpeed)),
		"",
		"; move to start position",
		fmt.Sprintf("G1 X%.3f Y%.3f Z%.3f F%d",
			bed.StartX, bed.StartY, cfg.FirstLayerZ(), feedInt(cfg.TravelSpeed)),
		"",
		"; enable fan",
		"M106 S255 ; fan at full speed",
		"",
	}
}

// EndSequence returns the fixed end-of-print boilerplate.
func EndSequence() []string {
	return []string{
		"; shutdown",
		"M104 S0 ; extruder heater off",
		"M140 S0 ; bed heater off",
		"M106 S0 ; fan off",
		"",
		"; end of program",
		"M30 ; program end",
	}
}

// Render returns the complete ordered command list for a program.
func Render(cfg *config.ProcessConfig, bed config.BedPlacement, p *toolpath.Program) []string {
	lines := StartSequence(cfg, bed)
	for _, st := range p.Skirt {
		lines = append(lines, FormatStep(st))
	}
	for _, layer := range p.Layers {
		for _, st := range layer.Steps {
			lines = append(lines, FormatStep(st))
		}
	}
	for _, st := range p.Closing {
		lines = append(lines, FormatStep(st))
	}
	return append(lines, EndSequence()...)
}

// Write renders a program and writes it line by line to w. Byte
// persistence (file creation, flushing to disk) belongs to the caller.
func Write(w io.Writer, cfg *config.ProcessConfig, bed config.BedPlacement, p *toolpath.Program) error {
	bw := bufio.NewWriter(w)
	for _, line := range Render(cfg, bed, p) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return errors.EmitError(err, "writing g-code output")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.EmitError(err, "flushing g-code output")
	}
	return nil
}
