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

// Package scene maps geographic coordinates into a fixed virtual 2D
// scene space and turns an activity sequence into an ordered stream of
// scene directives for a rendering collaborator to consume.
package scene

import (
	"github.com/routereel/routereel/timeline"
)

// Default scene dimensions in scene units. The 16:9 shape matches the
// default bounds aspect so one geographic degree maps to the same scene
// distance on both axes.
const (
	DefaultSceneWidth  = 14.0
	DefaultSceneHeight = 7.875
)

// Point is a position in scene space. The origin is the center of the
// journey bounds; x grows east, y grows north.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Projector linearly maps geographic coordinates into scene space
// against a fixed bounds. Stateless; safe to copy and share.
type Projector struct {
	Bounds timeline.Bounds
	Width  float64
	Height float64
}

// NewProjector returns a projector for the given bounds at the default
// scene dimensions.
func NewProjector(b timeline.Bounds) Projector {
	return Projector{Bounds: b, Width: DefaultSceneWidth, Height: DefaultSceneHeight}
}

// Project maps a coordinate into scene space: normalize each axis to
// [0,1] against the bounds span, then recenter so the bounds' center
// lands on the scene origin. A zero span normalizes to 0.5 rather than
// dividing by zero. Flat-earth linear mapping, no distortion correction.
func (p Projector) Project(c timeline.Coordinate) Point {
	normX, normY := 0.5, 0.5
	if span := p.Bounds.LonSpan(); span != 0 {
		normX = (c.Lon - p.Bounds.MinLon) / span
	}
	if span := p.Bounds.LatSpan(); span != 0 {
		normY = (c.Lat - p.Bounds.MinLat) / span
	}
	return Point{
		X: (normX - 0.5) * p.Width,
		Y: (normY - 0.5) * p.Height,
	}
}
