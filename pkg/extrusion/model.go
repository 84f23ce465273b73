// Extrusion model: deposited bead volume to filament feed length
//
// Copyright (C) 2026  Go Migration Team
//
// This file may be distributed under the terms of the GNU GPLv3 license.

// Package extrusion computes filament feed lengths and tracks the
// cumulative feed-axis position across a generation run.
package extrusion

import "math"

// Length returns the filament length to feed for one deposited line.
//
// The deposited material is modeled as a rectangular bead of
// cross-section layerHeight x lineWidth and the given length; the feed
// length is that volume divided by the filament's circular
// cross-sectional area:
//
//	E = (distance * layerHeight * lineWidth) / (pi * (filamentDiameter/2)^2)
//
// Pure function. Callers guarantee distance >= 0 and
// filamentDiameter > 0 (enforced at configuration validation).
func Length(distance, layerHeight, lineWidth, filamentDiameter float64) float64 {
	filamentArea := math.Pi * math.Pow(filamentDiameter/2, 2)
	volume := distance * layerHeight * lineWidth
	return volume / filamentArea
}
