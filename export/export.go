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

// Package export converts a loaded transit network into Google My Maps
// compatible CSV and KML files: one stations layer, one lines layer.
//
// The column shapes are deliberately rigid. My Maps expects lowercase
// name/latitude/longitude plus a capitalized Description, and chokes on
// extra columns, so the records here carry exactly what works.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"github.com/routereel/routereel/timeline"
	"github.com/routereel/routereel/transit"
)

// Rail kinds as named by the network component endpoints.
const (
	KindSubwayLightrail = "SUBWAY_LIGHTRAIL"
	KindTram            = "TRAM"
	KindCommuterRail    = "COMMUTER_RAIL"
)

// StationRecord is one stations-CSV row. The generic name carries the
// rail kind; the actual station name goes in Description, which is what
// My Maps shows on click.
type StationRecord struct {
	Name        string  `csv:"name"`
	Latitude    float64 `csv:"latitude"`
	Longitude   float64 `csv:"longitude"`
	Description string  `csv:"Description"`
}

// LineRecord is one lines-CSV row: WKT geometry plus a single line
// name. Multi-name line features are expanded upstream, one row each.
type LineRecord struct {
	WKT         string `csv:"WKT"`
	Name        string `csv:"name"`
	Description string `csv:"Description"`
}

// StationRecords converts the network's stations for the given rail
// kind. Unlabeled stations get a kind-specific unknown description.
func StationRecords(stations []transit.Station, kind string) []StationRecord {
	records := make([]StationRecord, len(stations))
	for i, st := range stations {
		desc := st.Label
		if desc == "" {
			desc = fmt.Sprintf("Unknown %s Station", railTypeWord(kind))
		}
		records[i] = StationRecord{
			Name:        fmt.Sprintf("%s Station", kind),
			Latitude:    st.Point.Lat,
			Longitude:   st.Point.Lon,
			Description: desc,
		}
	}
	return records
}

// LineRecords converts the network's lines, expanding multi-name
// features into one row per name, all sharing the WKT geometry.
func LineRecords(lines []transit.Line) []LineRecord {
	var records []LineRecord
	for _, line := range lines {
		wkt := lineStringWKT(line.Path)
		for _, name := range line.Names {
			records = append(records, LineRecord{
				WKT:         wkt,
				Name:        name,
				Description: name,
			})
		}
	}
	return records
}

// WriteStationsCSV writes the stations layer for one rail kind.
func WriteStationsCSV(w io.Writer, stations []transit.Station, kind string) error {
	records := StationRecords(stations, kind)
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing stations csv: %w", err)
	}
	timeline.Log.Named("export").Info("wrote stations csv",
		zap.String("kind", kind),
		zap.Int("stations", len(records)))
	return nil
}

// WriteLinesCSV writes the lines layer.
func WriteLinesCSV(w io.Writer, lines []transit.Line) error {
	records := LineRecords(lines)
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("writing lines csv: %w", err)
	}
	timeline.Log.Named("export").Info("wrote lines csv",
		zap.Int("rows", len(records)))
	return nil
}

// railTypeWord turns an endpoint kind into the word used in unknown
// station descriptions.
func railTypeWord(kind string) string {
	switch kind {
	case KindSubwayLightrail:
		return "Subway"
	case KindTram:
		return "Tram"
	case KindCommuterRail:
		return "Commuter Rail"
	}
	// title-case whatever we were given
	word := strings.ReplaceAll(strings.ToLower(kind), "_", " ")
	return strings.Title(word) //nolint:staticcheck // ASCII kind names only
}

// lineStringWKT renders a polyline as WKT, in (lon lat) axis order.
func lineStringWKT(path []timeline.Coordinate) string {
	var b strings.Builder
	b.WriteString("LINESTRING (")
	for i, c := range path {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v %v", c.Lon, c.Lat)
	}
	b.WriteString(")")
	return b.String()
}
