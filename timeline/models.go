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
	"strconv"
	"time"
)

// Raw shapes of the Semantic Location History export. Only the fields the
// pipeline needs are declared; everything else in a record is ignored.

// rawDocument decodes the record collection lazily: each record is kept
// as raw JSON so one malformed record cannot fail the whole document.
type rawDocument struct {
	TimelineObjects []json.RawMessage `json:"timelineObjects"`
}

// rawTimelineObject is a record of the top-level collection. Exactly one
// of the two discriminator fields is expected to be present; records with
// neither are unmodeled types and get skipped.
type rawTimelineObject struct {
	PlaceVisit      *rawPlaceVisit      `json:"placeVisit"`
	ActivitySegment *rawActivitySegment `json:"activitySegment"`
}

type rawPlaceVisit struct {
	Location rawLocation `json:"location"`
	Duration rawDuration `json:"duration"`
}

type rawActivitySegment struct {
	StartLocation rawLocation `json:"startLocation"`
	EndLocation   rawLocation `json:"endLocation"`
	ActivityType  string      `json:"activityType"`
	Distance      int         `json:"distance"`
	Duration      rawDuration `json:"duration"`
	WaypointPath  struct {
		Waypoints []rawWaypoint `json:"waypoints"`
	} `json:"waypointPath"`
}

// rawLocation holds an E7 coordinate pair. Longitude has lived under two
// different keys over the export format's history: "longitudeE7" is the
// primary key, "lngE7" the older fallback. Pointers distinguish a present
// zero from an absent field so the fallback order is honored exactly.
type rawLocation struct {
	LatitudeE7  int64  `json:"latitudeE7"`
	LongitudeE7 *int64 `json:"longitudeE7"`
	LngE7       *int64 `json:"lngE7"`
	Name        string `json:"name"`
	PlaceID     string `json:"placeId"`
}

func (l rawLocation) coordinate() Coordinate {
	var lonE7 int64
	switch {
	case l.LongitudeE7 != nil:
		lonE7 = *l.LongitudeE7
	case l.LngE7 != nil:
		lonE7 = *l.LngE7
	}
	return Coordinate{
		Lat: E7ToDecimal(l.LatitudeE7),
		Lon: E7ToDecimal(lonE7),
	}
}

// rawWaypoint uses latE7/lngE7 keys. This is a separate lookup path from
// rawLocation, not a variant of it; waypoints never carry longitudeE7.
type rawWaypoint struct {
	LatE7 int64 `json:"latE7"`
	LngE7 int64 `json:"lngE7"`
}

func (w rawWaypoint) coordinate() Coordinate {
	return Coordinate{
		Lat: E7ToDecimal(w.LatE7),
		Lon: E7ToDecimal(w.LngE7),
	}
}

// rawDuration carries a timestamp pair in either of the export's two
// eras: RFC 3339 strings, or epoch-millisecond strings on older records.
type rawDuration struct {
	StartTimestamp   string `json:"startTimestamp"`
	EndTimestamp     string `json:"endTimestamp"`
	StartTimestampMs string `json:"startTimestampMs"`
	EndTimestampMs   string `json:"endTimestampMs"`
}

func (d rawDuration) start() time.Time {
	return parseTimestamp(d.StartTimestamp, d.StartTimestampMs)
}

func (d rawDuration) end() time.Time {
	return parseTimestamp(d.EndTimestamp, d.EndTimestampMs)
}

// parseTimestamp tries the RFC 3339 form first, then the legacy
// epoch-milliseconds string. Unparseable or absent values yield the zero
// time rather than an error; timestamps are advisory for this pipeline.
func parseTimestamp(rfc3339, epochMs string) time.Time {
	if rfc3339 != "" {
		if ts, err := time.Parse(time.RFC3339, rfc3339); err == nil {
			return ts
		}
	}
	if epochMs != "" {
		if ms, err := strconv.ParseInt(epochMs, 10, 64); err == nil {
			return time.UnixMilli(ms).UTC()
		}
	}
	return time.Time{}
}
