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

package transit

import (
	"testing"

	"github.com/routereel/routereel/timeline"
)

func subwaySegment(points ...timeline.Coordinate) timeline.MovementSegment {
	seg := timeline.MovementSegment{
		Mode: timeline.ModeSubway,
		From: points[0],
		To:   points[len(points)-1],
	}
	if len(points) > 2 {
		seg.Waypoints = points[1 : len(points)-1]
	}
	return seg
}

func TestSnapExactAndBeyondTolerance(t *testing.T) {
	stations := []Station{
		{Point: timeline.Coordinate{Lat: 40.7527, Lon: -73.9890}, Label: "34 St"},
	}

	// a point exactly at the station always snaps
	seg := subwaySegment(
		timeline.Coordinate{Lat: 40.7527, Lon: -73.9890},
		timeline.Coordinate{Lat: 40.7527, Lon: -73.9890},
	)
	snapped := SnapToStations(seg, stations, DefaultSnapTolerance)
	if len(snapped) != 1 {
		t.Fatalf("exact match should snap, got %d stations", len(snapped))
	}
	if snapped[0].Label != "34 St" || snapped[0].JourneyOrder != 1 {
		t.Errorf("wrong snap result: %+v", snapped[0])
	}

	// tolerance + epsilon never snaps
	const tolerance = 0.005
	far := timeline.Coordinate{Lat: 40.7527, Lon: -73.9890 + tolerance + 1e-9}
	snapped = SnapToStations(subwaySegment(far, far), stations, tolerance)
	if len(snapped) != 0 {
		t.Fatalf("point beyond tolerance must not snap, got %d stations", len(snapped))
	}

	// exactly at tolerance is inclusive
	edge := timeline.Coordinate{Lat: 40.7527, Lon: -73.9890 + tolerance}
	snapped = SnapToStations(subwaySegment(edge, edge), stations, tolerance)
	if len(snapped) != 1 {
		t.Fatalf("point at exactly tolerance should snap, got %d stations", len(snapped))
	}
}

func TestSnapDeduplicates(t *testing.T) {
	s1 := timeline.Coordinate{Lat: 40.75, Lon: -73.99}
	s2 := timeline.Coordinate{Lat: 40.76, Lon: -73.98}
	stations := []Station{
		{Point: s1, Label: "First"},
		{Point: s2, Label: "Second"},
	}

	// waypoints [P, P, Q, P]: consecutive repeats collapse, and the
	// later return to S1 is dropped, not re-inserted
	seg := subwaySegment(s1, s1, s2, s1)
	snapped := SnapToStations(seg, stations, DefaultSnapTolerance)

	if len(snapped) != 2 {
		t.Fatalf("expected [S1, S2], got %d stations", len(snapped))
	}
	if snapped[0].StationIndex != 0 || snapped[0].JourneyOrder != 1 {
		t.Errorf("first stop wrong: %+v", snapped[0])
	}
	if snapped[1].StationIndex != 1 || snapped[1].JourneyOrder != 2 {
		t.Errorf("second stop wrong: %+v", snapped[1])
	}
}

func TestSnapSynthesizesLabels(t *testing.T) {
	stations := []Station{
		{Point: timeline.Coordinate{Lat: 40.75, Lon: -73.99}}, // no label
	}
	seg := subwaySegment(
		timeline.Coordinate{Lat: 40.75, Lon: -73.99},
		timeline.Coordinate{Lat: 40.75, Lon: -73.99},
	)

	snapped := SnapToStations(seg, stations, DefaultSnapTolerance)
	if len(snapped) != 1 {
		t.Fatalf("expected 1 station, got %d", len(snapped))
	}
	if snapped[0].Label != "Station 1" {
		t.Errorf("expected synthesized label, got %q", snapped[0].Label)
	}
}

func TestSnapEmptyStations(t *testing.T) {
	seg := subwaySegment(
		timeline.Coordinate{Lat: 40.75, Lon: -73.99},
		timeline.Coordinate{Lat: 40.76, Lon: -73.98},
	)
	if snapped := SnapToStations(seg, nil, DefaultSnapTolerance); len(snapped) != 0 {
		t.Fatalf("empty station set must yield empty result, got %d", len(snapped))
	}
}

func TestSnapTieBreaksByScanOrder(t *testing.T) {
	// two stations exactly equidistant from the point: the first in the
	// layer wins, preserving input ordering as the deterministic rule
	stations := []Station{
		{Point: timeline.Coordinate{Lat: 40.75, Lon: -73.99}, Label: "A"},
		{Point: timeline.Coordinate{Lat: 40.75, Lon: -73.97}, Label: "B"},
	}
	mid := timeline.Coordinate{Lat: 40.75, Lon: -73.98}

	snapped := SnapToStations(subwaySegment(mid, mid), stations, 0.05)
	if len(snapped) != 1 {
		t.Fatalf("expected 1 station, got %d", len(snapped))
	}
	if snapped[0].Label != "A" {
		t.Errorf("tie should go to first-scanned station, got %q", snapped[0].Label)
	}
}

func TestSnapSkipsMissesMidJourney(t *testing.T) {
	s1 := timeline.Coordinate{Lat: 40.75, Lon: -73.99}
	s2 := timeline.Coordinate{Lat: 40.76, Lon: -73.98}
	stations := []Station{
		{Point: s1, Label: "First"},
		{Point: s2, Label: "Second"},
	}

	// middle waypoint is nowhere near a station; only it is skipped
	offGrid := timeline.Coordinate{Lat: 41.5, Lon: -72.0}
	seg := subwaySegment(s1, offGrid, s2)

	snapped := SnapToStations(seg, stations, DefaultSnapTolerance)
	if len(snapped) != 2 {
		t.Fatalf("miss should skip the point, not the segment; got %d stations", len(snapped))
	}
}
