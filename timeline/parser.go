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
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Parser converts a raw Semantic Location History document into a flat,
// typed activity sequence. Parsing is deliberately tolerant: the export
// format is unversioned and has drifted over the years, so missing
// numeric fields default to 0, either longitude key era is accepted, and
// record types we don't model are skipped rather than rejected.
type Parser struct {
	log *zap.Logger
}

// NewParser returns a ready-to-use Parser.
func NewParser() *Parser {
	return &Parser{log: Log.Named("parser")}
}

// Parse reads a timeline document and returns its activities in source
// order. A document that is not a valid record collection returns
// ErrMalformedDocument; individually malformed records are skipped.
func (p *Parser) Parse(data []byte) ([]Activity, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	p.log.Info("decoding timeline objects", zap.Int("count", len(doc.TimelineObjects)))

	activities := make([]Activity, 0, len(doc.TimelineObjects))
	var skipped int
	for i, raw := range doc.TimelineObjects {
		var obj rawTimelineObject
		if err := json.Unmarshal(raw, &obj); err != nil {
			// one bad record never halts a whole-document parse
			p.log.Debug("skipping malformed record", zap.Int("index", i), zap.Error(err))
			skipped++
			continue
		}
		switch {
		case obj.PlaceVisit != nil:
			activities = append(activities, parsePlaceVisit(obj.PlaceVisit))
		case obj.ActivitySegment != nil:
			activities = append(activities, parseActivitySegment(obj.ActivitySegment))
		default:
			// unmodeled record type; upstream data routinely has these
			skipped++
		}
	}

	p.log.Info("parsed timeline",
		zap.Int("activities", len(activities)),
		zap.Int("skipped", skipped))

	return activities, nil
}

func parsePlaceVisit(raw *rawPlaceVisit) PlaceVisit {
	return PlaceVisit{
		Location: raw.Location.coordinate(),
		Name:     raw.Location.Name,
		Start:    raw.Duration.start(),
		End:      raw.Duration.end(),
	}
}

func parseActivitySegment(raw *rawActivitySegment) MovementSegment {
	var waypoints []Coordinate
	if len(raw.WaypointPath.Waypoints) > 0 {
		waypoints = make([]Coordinate, len(raw.WaypointPath.Waypoints))
		for i, wp := range raw.WaypointPath.Waypoints {
			waypoints[i] = wp.coordinate()
		}
	}

	mode := raw.ActivityType
	if mode == "" {
		mode = ModeUnknown
	}

	return MovementSegment{
		From:           raw.StartLocation.coordinate(),
		To:             raw.EndLocation.coordinate(),
		Waypoints:      waypoints,
		Mode:           mode,
		Start:          raw.Duration.start(),
		End:            raw.Duration.end(),
		DistanceMeters: raw.Distance,
	}
}
