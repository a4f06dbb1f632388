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
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// FakeJourneyOptions configures the demo journey generator.
type FakeJourneyOptions struct {
	// Center of the generated journey; defaults to midtown Manhattan.
	Center Coordinate `json:"center,omitempty"`

	// Number of place visits to generate. Movement segments are placed
	// between consecutive visits. Defaults to 4.
	Places int `json:"places,omitempty"`

	// Seed for deterministic output; 0 means random.
	Seed uint64 `json:"seed,omitempty"`
}

// FakeJourney generates a plausible activity sequence for demos and
// development, so the pipeline can be exercised without anyone's real
// location history. Visits are scattered around the center, connected by
// alternating walking and subway segments with jittered waypoint paths.
func FakeJourney(opt FakeJourneyOptions) []Activity {
	if opt.Center == (Coordinate{}) {
		opt.Center = Coordinate{Lat: 40.7549, Lon: -73.9840}
	}
	if opt.Places <= 0 {
		opt.Places = 4
	}

	faker := gofakeit.New(opt.Seed)

	// spread of generated locations around the center, in degrees
	const spread = 0.02

	modes := []string{ModeWalking, ModeSubway, ModeDriving, ModeCycling}

	randomPlace := func() Coordinate {
		return Coordinate{
			Lat: opt.Center.Lat + faker.Float64Range(-spread, spread),
			Lon: opt.Center.Lon + faker.Float64Range(-spread, spread),
		}
	}

	clock := time.Date(2024, time.May, 18, 9, 0, 0, 0, time.UTC)
	advance := func(minMinutes, maxMinutes int) (start, end time.Time) {
		start = clock
		clock = clock.Add(time.Duration(faker.Number(minMinutes, maxMinutes)) * time.Minute)
		return start, clock
	}

	var activities []Activity
	prev := randomPlace()
	for i := 0; i < opt.Places; i++ {
		start, end := advance(20, 90)
		activities = append(activities, PlaceVisit{
			Location: prev,
			Name:     faker.Company(),
			Start:    start,
			End:      end,
		})

		if i == opt.Places-1 {
			break
		}

		next := randomPlace()
		segStart, segEnd := advance(10, 40)
		activities = append(activities, MovementSegment{
			From:           prev,
			To:             next,
			Waypoints:      jitteredPath(faker, prev, next),
			Mode:           modes[faker.Number(0, len(modes)-1)],
			Start:          segStart,
			End:            segEnd,
			DistanceMeters: faker.Number(300, 8000),
		})
		prev = next
	}

	return activities
}

// jitteredPath interpolates waypoints between from and to with a little
// lateral noise, imitating GPS samples along a route.
func jitteredPath(faker *gofakeit.Faker, from, to Coordinate) []Coordinate {
	n := faker.Number(2, 6)
	waypoints := make([]Coordinate, n)
	for i := range waypoints {
		t := float64(i+1) / float64(n+1)
		waypoints[i] = Coordinate{
			Lat: from.Lat + (to.Lat-from.Lat)*t + faker.Float64Range(-0.0005, 0.0005),
			Lon: from.Lon + (to.Lon-from.Lon)*t + faker.Float64Range(-0.0005, 0.0005),
		}
	}
	return waypoints
}
