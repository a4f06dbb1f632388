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

import "math"

// A Go implementation of the Ramer-Douglas-Peucker algorithm.
// Interactive demo and information: https://karthaus.nl/rdp/
//
// SimplifyPath reduces the number of points in a path while preserving
// its shape: it "thinks" of a line between the first and last point and
// drops every in-between point closer to that line than epsilon (in
// degrees), recursing on both halves when an outlier splits the path.
// Endpoints are always kept.
//
// Used to thin dense walking waypoint paths before sequencing; never
// applied to subway snapping, which must see every raw waypoint.
func SimplifyPath(points []Coordinate, epsilon float64) []Coordinate {
	const dimensions = 2
	if len(points) <= dimensions || epsilon <= 0 {
		return points
	}

	l := pathLine{points[0], points[len(points)-1]}

	idx, maxDist := seekMostDistantPoint(l, points)
	if maxDist >= epsilon {
		left := SimplifyPath(points[:idx+1], epsilon)
		right := SimplifyPath(points[idx:], epsilon)
		return append(left[:len(left)-1], right...)
	}

	// if the most distant point is still too close, then just return the two end points
	return []Coordinate{points[0], points[len(points)-1]}
}

func seekMostDistantPoint(l pathLine, points []Coordinate) (idx int, maxDist float64) {
	for i := 1; i < len(points)-1; i++ {
		if d := l.distanceToPoint(points[i]); d > maxDist {
			maxDist = d
			idx = i
		}
	}
	return idx, maxDist
}

type pathLine struct {
	start, end Coordinate
}

// distanceToPoint returns the perpendicular distance of a point to the
// line, treating lon/lat as cartesian, which is fine at city scale.
func (l pathLine) distanceToPoint(pt Coordinate) float64 {
	a, b, c := l.coefficients()
	denom := math.Sqrt(a*a + b*b)
	if denom == 0 {
		// degenerate line; fall back to distance from its single point
		dLat, dLon := pt.Lat-l.start.Lat, pt.Lon-l.start.Lon
		return math.Sqrt(dLat*dLat + dLon*dLon)
	}
	return math.Abs(a*pt.Lat+b*pt.Lon+c) / denom
}

// coefficients returns the three coefficients that define a line as
// ax + by + c = 0.
func (l pathLine) coefficients() (a, b, c float64) {
	a = l.start.Lon - l.end.Lon
	b = l.end.Lat - l.start.Lat
	c = l.start.Lat*l.end.Lon - l.end.Lat*l.start.Lon
	return a, b, c
}
