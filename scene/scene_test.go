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

package scene

import (
	"math"
	"testing"

	"github.com/routereel/routereel/timeline"
)

func TestProjectCentersBoundsCenter(t *testing.T) {
	for _, tt := range []struct {
		name   string
		bounds timeline.Bounds
	}{
		{
			name:   "nyc",
			bounds: timeline.Bounds{MinLon: -74.02, MinLat: 40.70, MaxLon: -73.95, MaxLat: 40.78},
		},
		{
			name:   "munich",
			bounds: timeline.Bounds{MinLon: 11.4, MinLat: 48.05, MaxLon: 11.7, MaxLat: 48.25},
		},
		{
			name:   "large magnitude",
			bounds: timeline.Bounds{MinLon: 170, MinLat: -45, MaxLon: 179, MaxLat: -40},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProjector(tt.bounds)
			got := p.Project(tt.bounds.Center())
			if math.Abs(got.X) > 1e-9 || math.Abs(got.Y) > 1e-9 {
				t.Errorf("center should project to origin, got (%g, %g)", got.X, got.Y)
			}
		})
	}
}

func TestProjectCorners(t *testing.T) {
	b := timeline.Bounds{MinLon: -74, MinLat: 40, MaxLon: -73, MaxLat: 41}
	p := NewProjector(b)

	min := p.Project(timeline.Coordinate{Lat: b.MinLat, Lon: b.MinLon})
	if min.X != -p.Width/2 || min.Y != -p.Height/2 {
		t.Errorf("min corner = (%g, %g), want (%g, %g)", min.X, min.Y, -p.Width/2, -p.Height/2)
	}
	max := p.Project(timeline.Coordinate{Lat: b.MaxLat, Lon: b.MaxLon})
	if max.X != p.Width/2 || max.Y != p.Height/2 {
		t.Errorf("max corner = (%g, %g), want (%g, %g)", max.X, max.Y, p.Width/2, p.Height/2)
	}
}

func TestProjectZeroSpanGuard(t *testing.T) {
	// degenerate bounds collapse to the scene origin, not NaN
	b := timeline.Bounds{MinLon: -73.98, MinLat: 40.75, MaxLon: -73.98, MaxLat: 40.75}
	p := NewProjector(b)

	got := p.Project(timeline.Coordinate{Lat: 40.75, Lon: -73.98})
	if got.X != 0 || got.Y != 0 {
		t.Errorf("zero-span bounds should project to origin, got (%g, %g)", got.X, got.Y)
	}
	if math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Error("projection produced NaN")
	}
}
