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

// Package timeline models a parsed location-history timeline: an ordered
// sequence of place visits and movement segments extracted from a Google
// Maps Timeline ("Semantic Location History") export.
//
// I found this website very helpful as documentation of the Takeout format:
// https://locationhistoryformat.com/
package timeline

import (
	"math"
	"time"
)

// Coordinate is a WGS84 (latitude, longitude) pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// E7ToDecimal converts a fixed-point E7 coordinate (degrees scaled by
// 10^7, as stored in Takeout exports) to decimal degrees.
func E7ToDecimal(e7 int64) float64 {
	return float64(e7) / 1e7
}

// DecimalToE7 converts decimal degrees to the fixed-point E7 encoding.
func DecimalToE7(deg float64) int64 {
	return int64(math.Round(deg * 1e7))
}

// Common activity modes seen in exports. The mode set is open: upstream
// data is free-form, so unknown values pass through untouched.
const (
	ModeWalking = "WALKING"
	ModeSubway  = "IN_SUBWAY"
	ModeDriving = "IN_PASSENGER_VEHICLE"
	ModeCycling = "CYCLING"
	ModeUnknown = "UNKNOWN"
)

// Activity is one unit of a parsed timeline: either a PlaceVisit or a
// MovementSegment. Activities keep the order given by the source; the
// pipeline never reorders them.
type Activity interface {
	// StartTime and EndTime are the activity's timestamps as given by
	// the source (zero if the source omitted them).
	StartTime() time.Time
	EndTime() time.Time

	isActivity()
}

// PlaceVisit is a stationary stay at a single location.
type PlaceVisit struct {
	Location Coordinate
	Name     string // optional display name
	Start    time.Time
	End      time.Time
}

// StartTime returns the visit's start timestamp.
func (v PlaceVisit) StartTime() time.Time { return v.Start }

// EndTime returns the visit's end timestamp.
func (v PlaceVisit) EndTime() time.Time { return v.End }

func (PlaceVisit) isActivity() {}

// MovementSegment is a movement between two locations, optionally with
// intermediate waypoints sampled along the way.
type MovementSegment struct {
	From      Coordinate
	To        Coordinate
	Waypoints []Coordinate // may be empty; degrades to straight-line From->To
	Mode      string       // open set; see Mode* constants
	Start     time.Time
	End       time.Time

	// DistanceMeters is the source's distance figure for the segment,
	// 0 if absent.
	DistanceMeters int
}

// StartTime returns the segment's start timestamp.
func (s MovementSegment) StartTime() time.Time { return s.Start }

// EndTime returns the segment's end timestamp.
func (s MovementSegment) EndTime() time.Time { return s.End }

func (MovementSegment) isActivity() {}

// Points returns the ordered point list [From, Waypoints..., To].
func (s MovementSegment) Points() []Coordinate {
	pts := make([]Coordinate, 0, len(s.Waypoints)+2)
	pts = append(pts, s.From)
	pts = append(pts, s.Waypoints...)
	pts = append(pts, s.To)
	return pts
}

// Coordinates collects every coordinate referenced by the activities, in
// activity order: visit locations, then for each segment its start, end,
// and all waypoints.
func Coordinates(activities []Activity) []Coordinate {
	var coords []Coordinate
	for _, act := range activities {
		switch a := act.(type) {
		case PlaceVisit:
			coords = append(coords, a.Location)
		case MovementSegment:
			coords = append(coords, a.From, a.To)
			coords = append(coords, a.Waypoints...)
		}
	}
	return coords
}
