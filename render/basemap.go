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

package render

import (
	"github.com/fogleman/gg"
)

const (
	lineStrokeWidth    = 3.0
	lineOutlineWidth   = 5.0
	stationDotRadius   = 4.0
	stationRingRadius  = 5.5
	stationLabelOffset = 8.0
)

// drawBasemap paints the transit network under the journey: each line
// as a white-outlined colored stroke in its authentic color, each
// station as a white dot with a black ring, and names for a limited
// number of labeled stations.
func (r *Renderer) drawBasemap(dc *gg.Context, v view) {
	if r.network == nil {
		return
	}

	for _, line := range r.network.Lines {
		if len(line.Path) < 2 {
			continue
		}

		// outline pass first so colored strokes sit on top
		for pass, width := range []float64{lineOutlineWidth, lineStrokeWidth} {
			if pass == 0 {
				dc.SetHexColor("#FFFFFF")
			} else {
				dc.SetHexColor(line.Color)
			}
			dc.SetLineWidth(width)
			for i, c := range line.Path {
				x, y := v.toPixel(r.proj.Project(c))
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.Stroke()
		}
	}

	labeled := 0
	for _, st := range r.network.Stations {
		x, y := v.toPixel(r.proj.Project(st.Point))

		dc.SetHexColor("#1A1A1A")
		dc.DrawCircle(x, y, stationRingRadius)
		dc.Fill()
		dc.SetHexColor("#FFFFFF")
		dc.DrawCircle(x, y, stationDotRadius)
		dc.Fill()

		if st.Label != "" && labeled < r.opts.MaxStationLabels {
			dc.SetFontFace(r.face)
			dc.SetHexColor("#3A3A3A")
			dc.DrawStringAnchored(st.Label, x, y-stationLabelOffset, 0.5, 0)
			labeled++
		}
	}
}
