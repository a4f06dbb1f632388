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

const networkFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [-73.9890, 40.7527]},
			"properties": {"station_label": "34 St"}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Point", "coordinates": [11.5805, 48.2877]},
			"properties": {}
		},
		{
			"type": "Feature",
			"geometry": {"type": "LineString", "coordinates": [[-73.99, 40.75], [-73.98, 40.76]]},
			"properties": {
				"dbg_lines": "U4,U5",
				"lines": "[{\"color\": \"A06E1E\", \"id\": \"#A06E1E\", \"label\": \"U5\"}]"
			}
		},
		{
			"type": "Feature",
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]},
			"properties": {}
		}
	]
}`

func TestLoadPartitionsGeometries(t *testing.T) {
	nw, err := Load([]byte(networkFixture))
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if len(nw.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(nw.Stations))
	}
	if len(nw.Lines) != 1 {
		t.Fatalf("expected 1 line (polygon dropped), got %d", len(nw.Lines))
	}

	// GeoJSON is (lon, lat); the Coordinate model is (lat, lon)
	st := nw.Stations[0]
	if st.Point.Lat != 40.7527 || st.Point.Lon != -73.9890 {
		t.Errorf("coordinate transposed or wrong: %+v", st.Point)
	}
	if st.Label != "34 St" {
		t.Errorf("wrong station label: %q", st.Label)
	}
	if nw.Stations[1].Label != "" {
		t.Errorf("missing label should be empty, got %q", nw.Stations[1].Label)
	}

	line := nw.Lines[0]
	if len(line.Path) != 2 {
		t.Fatalf("expected 2 path points, got %d", len(line.Path))
	}
	if line.Path[0].Lat != 40.75 || line.Path[0].Lon != -73.99 {
		t.Errorf("line path transposed or wrong: %+v", line.Path[0])
	}
}

func TestLoadRejectsMalformedCollection(t *testing.T) {
	if _, err := Load([]byte(`{not geojson`)); err == nil {
		t.Fatal("expected error for malformed feature collection")
	}
}

func TestLineColorExtraction(t *testing.T) {
	for _, tt := range []struct {
		name  string
		lines any
		want  string
	}{
		{
			name:  "color from first entry, hash added",
			lines: `[{"color": "A06E1E", "label": "U5"}, {"color": "FF0000"}]`,
			want:  "#A06E1E",
		},
		{
			name:  "color already prefixed",
			lines: `[{"color": "#0039A6"}]`,
			want:  "#0039A6",
		},
		{
			name: "missing field",
			want: DefaultLineColor,
		},
		{
			name:  "malformed json",
			lines: `[{"color": oops`,
			want:  DefaultLineColor,
		},
		{
			name:  "empty array",
			lines: `[]`,
			want:  DefaultLineColor,
		},
		{
			name:  "first entry has no color",
			lines: `[{"label": "U5"}]`,
			want:  DefaultLineColor,
		},
		{
			name:  "pre-parsed array",
			lines: []any{map[string]any{"color": "00933C"}},
			want:  "#00933C",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			props := map[string]any{}
			if tt.lines != nil {
				props["lines"] = tt.lines
			}
			if got := lineColor(props); got != tt.want {
				t.Errorf("lineColor = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLineNamesExtraction(t *testing.T) {
	for _, tt := range []struct {
		name  string
		props map[string]any
		want  []string
	}{
		{
			name:  "dbg_lines single",
			props: map[string]any{"dbg_lines": "U5", "lines": `[{"label":"ignored"}]`},
			want:  []string{"U5"},
		},
		{
			name:  "dbg_lines comma split, all kept",
			props: map[string]any{"dbg_lines": "S1,S6,S8"},
			want:  []string{"S1", "S6", "S8"},
		},
		{
			name:  "labels from lines json when dbg_lines empty",
			props: map[string]any{"dbg_lines": "", "lines": `[{"label": "U4"}, {"label": "U5"}]`},
			want:  []string{"U4", "U5"},
		},
		{
			name:  "fallback to unknown",
			props: map[string]any{"other": "value"},
			want:  []string{UnknownLineName},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got := lineNames(tt.props)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("name %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineExpand(t *testing.T) {
	line := Line{
		Path: []timeline.Coordinate{
			{Lat: 48.1, Lon: 11.5},
			{Lat: 48.2, Lon: 11.6},
		},
		Color: "#A06E1E",
		Names: []string{"U4", "U5"},
	}

	expanded := line.Expand()
	if len(expanded) != 2 {
		t.Fatalf("expected one record per name, got %d", len(expanded))
	}
	for i, want := range []string{"U4", "U5"} {
		if len(expanded[i].Names) != 1 || expanded[i].Names[0] != want {
			t.Errorf("record %d: names = %v, want [%s]", i, expanded[i].Names, want)
		}
		if expanded[i].Color != line.Color {
			t.Errorf("record %d lost its color", i)
		}
		if len(expanded[i].Path) != len(line.Path) {
			t.Errorf("record %d lost its polyline", i)
		}
	}
}
