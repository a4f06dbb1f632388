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

// Package transit loads a transit network from a GeoJSON feature
// collection and snaps noisy GPS points onto its stations.
//
// The expected input is a network component export in the style of the
// LOOM project (loom.cs.uni-freiburg.de): Point features are stations
// (optionally carrying a "station_label" property), LineString features
// are physical route segments carrying line metadata.
package transit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	orbgeojson "github.com/paulmach/orb/geojson"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/routereel/routereel/timeline"
)

// DefaultLineColor is used when a line feature carries no usable color
// metadata.
const DefaultLineColor = "#000000"

// UnknownLineName is the fallback when a line feature carries no name
// metadata at all.
const UnknownLineName = "Unknown Line"

// Station is a transit stop. Identity is positional: the index in the
// network's station layer, since the source guarantees no separate ID.
type Station struct {
	Point timeline.Coordinate
	Label string // optional human-readable name
}

// Line is a physical route polyline. One feature may represent several
// named lines sharing the same track; Names keeps all of them so
// consumers needing per-line identity can expand rather than collapse.
type Line struct {
	Path  []timeline.Coordinate
	Color string   // #RRGGBB display color
	Names []string // at least one entry; UnknownLineName if the source had none
}

// Expand returns one logical Line per name, all sharing the polyline
// and color. Never returns a combined multi-name record.
func (l Line) Expand() []Line {
	out := make([]Line, len(l.Names))
	for i, name := range l.Names {
		out[i] = Line{Path: l.Path, Color: l.Color, Names: []string{name}}
	}
	return out
}

// Network is a loaded transit network: stations and lines partitioned
// from one feature collection.
type Network struct {
	Stations []Station
	Lines    []Line
}

// ExpandedLines returns every line expanded to per-name records.
func (n *Network) ExpandedLines() []Line {
	var out []Line
	for _, l := range n.Lines {
		out = append(out, l.Expand()...)
	}
	return out
}

// Load partitions a GeoJSON feature collection into stations (Point
// geometries) and lines (LineString geometries). Other geometry kinds
// are dropped. GeoJSON stores positions as (lon, lat); this is where the
// transposition to the (lat, lon) Coordinate model happens, exactly once.
func Load(data []byte) (*Network, error) {
	fc, err := orbgeojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decoding transit network: %w", err)
	}

	log := timeline.Log.Named("transit")
	nw := new(Network)
	var dropped int

	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.Point:
			nw.Stations = append(nw.Stations, Station{
				Point: timeline.Coordinate{Lat: geom.Lat(), Lon: geom.Lon()},
				Label: f.Properties.MustString("station_label", ""),
			})
		case orb.LineString:
			path := make([]timeline.Coordinate, len(geom))
			for i, pt := range geom {
				path[i] = timeline.Coordinate{Lat: pt.Lat(), Lon: pt.Lon()}
			}
			nw.Lines = append(nw.Lines, Line{
				Path:  path,
				Color: lineColor(f.Properties),
				Names: lineNames(f.Properties),
			})
		default:
			dropped++
		}
	}

	log.Info("loaded transit network",
		zap.Int("stations", len(nw.Stations)),
		zap.Int("lines", len(nw.Lines)),
		zap.Int("dropped_features", dropped))

	return nw, nil
}

// linesJSON returns the feature's embedded line-metadata field as a JSON
// string. The field is usually a JSON-encoded string, but some exports
// carry it pre-parsed as an array; re-encode so both look the same.
func linesJSON(props orbgeojson.Properties) string {
	switch v := props["lines"].(type) {
	case string:
		return v
	case []any:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
	}
	return ""
}

// lineColor extracts the first line's display color from the embedded
// metadata, normalized to #RRGGBB. Missing field, malformed JSON, empty
// array, missing color attribute: all of it yields the default color.
// This must never fail.
func lineColor(props orbgeojson.Properties) string {
	raw := linesJSON(props)
	if raw == "" {
		return DefaultLineColor
	}
	color := gjson.Get(raw, "0.color").String()
	if color == "" {
		return DefaultLineColor
	}
	if !strings.HasPrefix(color, "#") {
		color = "#" + color
	}
	return color
}

// lineNames extracts the line names of a feature. The "dbg_lines"
// property is a comma-delimited name list; failing that, the labels of
// the embedded line metadata; failing that, a single unknown entry.
func lineNames(props orbgeojson.Properties) []string {
	if dbg := props.MustString("dbg_lines", ""); dbg != "" {
		var names []string
		for _, part := range strings.Split(dbg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
		if len(names) > 0 {
			return names
		}
	}

	if raw := linesJSON(props); raw != "" {
		var names []string
		for _, label := range gjson.Get(raw, "#.label").Array() {
			if label.String() != "" {
				names = append(names, label.String())
			}
		}
		if len(names) > 0 {
			return names
		}
	}

	return []string{UnknownLineName}
}
