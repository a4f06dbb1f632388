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
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/routereel/routereel/timeline"
)

// DefaultSnapTolerance is the maximum snapping distance in degrees,
// roughly 500 m at NYC or Munich latitudes.
const DefaultSnapTolerance = 0.005

// SnappedStation is a station a subway journey passed through: the
// station itself, its index in the network's station layer, its 1-based
// position in the journey, and a display label (synthesized when the
// station has none).
type SnappedStation struct {
	Station      Station
	StationIndex int
	JourneyOrder int
	Label        string
}

// SnapToStations maps a subway segment's raw GPS points onto the nearest
// real stations. The ordered point list [start, waypoints..., end] is
// matched point by point: the nearest station within tolerance is
// accepted, anything farther yields no match and the point is skipped.
//
// Consecutive raw waypoints frequently resolve to the same nearest
// station because of GPS noise, so results are deduplicated by station
// identity (layer index, not coordinate), keeping the first occurrence's
// journey position. A later return to an already-visited station is
// dropped too, not re-inserted.
//
// Callers gate on mode before invoking; the snapper assumes subway
// semantics. An empty station set yields an empty result, not an error.
func SnapToStations(seg timeline.MovementSegment, stations []Station, tolerance float64) []SnappedStation {
	log := timeline.Log.Named("snap")

	if len(stations) == 0 {
		log.Warn("no stations to snap against")
		return nil
	}

	var snapped []SnappedStation
	seen := make(map[int]struct{})

	for _, pt := range seg.Points() {
		idx, ok := nearestStation(pt, stations, tolerance)
		if !ok {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}

		st := stations[idx]
		order := len(snapped) + 1
		label := st.Label
		if label == "" {
			label = fmt.Sprintf("Station %d", order)
		}
		snapped = append(snapped, SnappedStation{
			Station:      st,
			StationIndex: idx,
			JourneyOrder: order,
			Label:        label,
		})
	}

	log.Info("snapped subway journey to stations",
		zap.Int("raw_points", len(seg.Points())),
		zap.Int("stations", len(snapped)))

	return snapped
}

// nearestStation does a brute-force scan over all candidate stations and
// returns the index of the closest one, if it is within tolerance.
// Planar lon/lat distance is fine at city scale. Ties are broken by scan
// order: the first station achieving the minimum wins, which keeps the
// result deterministic for a given input layer ordering.
//
// At the documented scale (hundreds of stations, tens of points) brute
// force is fine; a grid or R-tree index would change nothing observable
// except tie-breaking, so don't swap one in casually.
func nearestStation(pt timeline.Coordinate, stations []Station, tolerance float64) (int, bool) {
	best := -1
	bestDist := math.MaxFloat64
	for i, st := range stations {
		dLat := pt.Lat - st.Point.Lat
		dLon := pt.Lon - st.Point.Lon
		if d := math.Sqrt(dLat*dLat + dLon*dLon); d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 || bestDist > tolerance {
		return 0, false
	}
	return best, true
}
