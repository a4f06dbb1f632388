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

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/routereel/routereel/timeline"
	"github.com/routereel/routereel/transit"
)

func munichStations() []transit.Station {
	return []transit.Station{
		{Point: timeline.Coordinate{Lat: 48.1, Lon: 11.5}, Label: "Marienplatz"},
		{Point: timeline.Coordinate{Lat: 48.2, Lon: 11.6}, Label: "Hauptbahnhof"},
	}
}

func TestStationRecordsShape(t *testing.T) {
	records := StationRecords(munichStations(), "TEST")

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Latitude != 48.1 || records[0].Longitude != 11.5 {
		t.Errorf("coordinates wrong: %+v", records[0])
	}
	// generic names carry the kind; the real name lives in Description
	if records[0].Name != "TEST Station" || records[1].Name != "TEST Station" {
		t.Errorf("names should be generic: %q, %q", records[0].Name, records[1].Name)
	}
	if records[0].Description != "Marienplatz" || records[1].Description != "Hauptbahnhof" {
		t.Errorf("descriptions should be station labels: %+v", records)
	}
}

func TestStationRecordsUnknownFallbacks(t *testing.T) {
	unlabeled := []transit.Station{{Point: timeline.Coordinate{Lat: 48.1, Lon: 11.5}}}

	for _, tt := range []struct {
		kind string
		want string
	}{
		{KindSubwayLightrail, "Unknown Subway Station"},
		{KindTram, "Unknown Tram Station"},
		{KindCommuterRail, "Unknown Commuter Rail Station"},
	} {
		records := StationRecords(unlabeled, tt.kind)
		if records[0].Description != tt.want {
			t.Errorf("kind %s: description = %q, want %q", tt.kind, records[0].Description, tt.want)
		}
	}
}

func TestWriteStationsCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStationsCSV(&buf, munichStations(), "SUBWAY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "name,latitude,longitude,Description" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "SUBWAY Station") || !strings.Contains(lines[1], "Marienplatz") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestLineRecordsSplitMultiName(t *testing.T) {
	lines := []transit.Line{
		{
			Path:  []timeline.Coordinate{{Lat: 48.1, Lon: 11.5}, {Lat: 48.2, Lon: 11.6}},
			Color: "#A06E1E",
			Names: []string{"U5"},
		},
		{
			Path:  []timeline.Coordinate{{Lat: 48.3, Lon: 11.7}, {Lat: 48.4, Lon: 11.8}},
			Color: "#008C4C",
			Names: []string{"S1", "S6", "S8"},
		},
	}

	records := LineRecords(lines)
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (U5 + 3 S-lines), got %d", len(records))
	}

	wantNames := []string{"U5", "S1", "S6", "S8"}
	for i, want := range wantNames {
		if records[i].Name != want {
			t.Errorf("row %d name = %q, want %q", i, records[i].Name, want)
		}
		if records[i].Description != want {
			t.Errorf("row %d description = %q, want %q", i, records[i].Description, want)
		}
	}

	// split rows share their source geometry, in (lon lat) WKT order
	if records[1].WKT != records[2].WKT || records[2].WKT != records[3].WKT {
		t.Error("split rows should share the same WKT")
	}
	if records[0].WKT != "LINESTRING (11.5 48.1, 11.6 48.2)" {
		t.Errorf("WKT = %q", records[0].WKT)
	}
}

func TestWriteStationsKMLFormat(t *testing.T) {
	stations := []transit.Station{
		{Point: timeline.Coordinate{Lat: 48.2877380552, Lon: 11.5805420781}, Label: "Lohhof"},
	}

	var buf bytes.Buffer
	if err := WriteStationsKML(&buf, stations, "component78"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := buf.String()

	for _, want := range []string{
		`<Document id="root_doc">`,
		`<Schema name="component78" id="component78">`,
		`<Folder><name>component78</name>`,
		`<SimpleField name="component" type="int"></SimpleField>`,
		`<SimpleField name="dbg_lines" type="string"></SimpleField>`,
		`<SimpleField name="station_label" type="string"></SimpleField>`,
		`<coordinates>11.5805420781,48.2877380552</coordinates>`,
	} {
		if !strings.Contains(content, want) {
			t.Errorf("kml missing %q", want)
		}
	}

	// placemarks must not carry name tags; My Maps misreads them
	start := strings.Index(content, `<Placemark id="component78.1">`)
	if start < 0 {
		t.Fatal("missing placemark with 1-based layer id")
	}
	end := strings.Index(content[start:], "</Placemark>")
	if strings.Contains(content[start:start+end], "<name>") {
		t.Error("placemark contains a name tag")
	}
}

func TestWriteStationsKMLEscapesLabels(t *testing.T) {
	stations := []transit.Station{
		{Point: timeline.Coordinate{Lat: 48.1, Lon: 11.5}, Label: `Karlsplatz <"Stachus" & more>`},
	}

	var buf bytes.Buffer
	if err := WriteStationsKML(&buf, stations, "layer"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := buf.String()

	if strings.Contains(content, `<"Stachus"`) {
		t.Error("label not escaped")
	}
	if !strings.Contains(content, "Karlsplatz &lt;&quot;Stachus&quot; &amp; more&gt;") {
		t.Errorf("escaped label missing from output:\n%s", content)
	}
}
