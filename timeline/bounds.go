/*
	Routereel
	Copyright (c) 2025 The Routereel Authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package timeline

import (
	"go.uber.org/zap"
)

// Defaults for journey framing. The minimum span of 0.015 degrees is
// about 1.5 km at mid latitudes, enough map context around a short walk.
const (
	DefaultTargetAspect   = 16.0 / 9.0
	DefaultMinSpanDegrees = 0.015
	DefaultPadFraction    = 0.25
)

// Bounds is a geographic bounding box in decimal degrees.
type Bounds struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// LonSpan returns the box width in degrees of longitude.
func (b Bounds) LonSpan() float64 { return b.MaxLon - b.MinLon }

// LatSpan returns the box height in degrees of latitude.
func (b Bounds) LatSpan() float64 { return b.MaxLat - b.MinLat }

// Center returns the box's center coordinate.
func (b Bounds) Center() Coordinate {
	return Coordinate{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// Contains reports whether c lies within the box (inclusive).
func (b Bounds) Contains(c Coordinate) bool {
	return c.Lon >= b.MinLon && c.Lon <= b.MaxLon &&
		c.Lat >= b.MinLat && c.Lat <= b.MaxLat
}

// ComputeBounds frames every coordinate referenced by the activities in a
// padded, aspect-corrected box. The three corrections happen in a fixed
// order, since each step's amount depends on the prior step's box:
//
//  1. each axis is widened to at least minSpanDegrees around its center
//  2. the narrower axis grows symmetrically until lonSpan/latSpan equals
//     targetAspect exactly (grow only, never shrink)
//  3. padFraction symmetric padding is applied to both axes
//
// Returns ErrEmptyInput when the activities reference no coordinate at
// all; an animation cannot be framed with zero points.
func ComputeBounds(activities []Activity, targetAspect, minSpanDegrees, padFraction float64) (Bounds, error) {
	coords := Coordinates(activities)
	if len(coords) == 0 {
		return Bounds{}, ErrEmptyInput
	}

	b := Bounds{
		MinLon: coords[0].Lon, MaxLon: coords[0].Lon,
		MinLat: coords[0].Lat, MaxLat: coords[0].Lat,
	}
	for _, c := range coords[1:] {
		if c.Lon < b.MinLon {
			b.MinLon = c.Lon
		}
		if c.Lon > b.MaxLon {
			b.MaxLon = c.Lon
		}
		if c.Lat < b.MinLat {
			b.MinLat = c.Lat
		}
		if c.Lat > b.MaxLat {
			b.MaxLat = c.Lat
		}
	}

	// minimum span, each axis independently around its own center
	if b.LonSpan() < minSpanDegrees {
		centerLon := (b.MinLon + b.MaxLon) / 2
		b.MinLon = centerLon - minSpanDegrees/2
		b.MaxLon = centerLon + minSpanDegrees/2
	}
	if b.LatSpan() < minSpanDegrees {
		centerLat := (b.MinLat + b.MaxLat) / 2
		b.MinLat = centerLat - minSpanDegrees/2
		b.MaxLat = centerLat + minSpanDegrees/2
	}

	// aspect correction: grow the narrower axis, symmetric around center
	currentAspect := b.LonSpan() / b.LatSpan()
	if currentAspect < targetAspect {
		newLonSpan := b.LatSpan() * targetAspect
		grow := (newLonSpan - b.LonSpan()) / 2
		b.MinLon -= grow
		b.MaxLon += grow
	} else if currentAspect > targetAspect {
		newLatSpan := b.LonSpan() / targetAspect
		grow := (newLatSpan - b.LatSpan()) / 2
		b.MinLat -= grow
		b.MaxLat += grow
	}

	// symmetric padding, both axes
	lonPad := b.LonSpan() * padFraction
	latPad := b.LatSpan() * padFraction
	b.MinLon -= lonPad
	b.MaxLon += lonPad
	b.MinLat -= latPad
	b.MaxLat += latPad

	Log.Named("bounds").Debug("computed journey bounds",
		zap.Int("coordinates", len(coords)),
		zap.Float64("min_lon", b.MinLon),
		zap.Float64("min_lat", b.MinLat),
		zap.Float64("max_lon", b.MaxLon),
		zap.Float64("max_lat", b.MaxLat))

	return b, nil
}
