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
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/routereel/routereel/timeline"
	"github.com/routereel/routereel/transit"
)

// kmlEscaper covers the XML special characters that can appear in
// station labels.
var kmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// WriteStationsKML writes a stations layer as KML in the exact shape
// Google My Maps imports cleanly: a root_doc document, a schema block
// named after the layer, and one placemark per station with no name
// tag (My Maps derives display names from schema data, and inline name
// tags break that).
//
// The format is written by hand rather than through an XML encoder
// because the consumer is sensitive to its exact layout; see the
// corresponding tests for the contract.
func WriteStationsKML(w io.Writer, stations []transit.Station, layer string) error {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="utf-8" ?>` + "\n")
	b.WriteString(`<kml xmlns="http://www.opengis.net/kml/2.2">` + "\n")
	b.WriteString(`<Document id="root_doc">` + "\n")

	fmt.Fprintf(&b, `<Schema name="%s" id="%s">`+"\n", layer, layer)
	b.WriteString(`	<SimpleField name="component" type="int"></SimpleField>` + "\n")
	b.WriteString(`	<SimpleField name="dbg_lines" type="string"></SimpleField>` + "\n")
	b.WriteString(`	<SimpleField name="station_label" type="string"></SimpleField>` + "\n")
	b.WriteString(`</Schema>` + "\n")

	fmt.Fprintf(&b, `<Folder><name>%s</name>`+"\n", layer)
	for i, st := range stations {
		fmt.Fprintf(&b, `  <Placemark id="%s.%d">`+"\n", layer, i+1)
		if st.Label != "" {
			fmt.Fprintf(&b, `    <ExtendedData><SchemaData schemaUrl="#%s">`+"\n", layer)
			fmt.Fprintf(&b, `        <SimpleData name="station_label">%s</SimpleData>`+"\n",
				kmlEscaper.Replace(st.Label))
			b.WriteString(`    </SchemaData></ExtendedData>` + "\n")
		}
		fmt.Fprintf(&b, `      <Point><coordinates>%v,%v</coordinates></Point>`+"\n",
			st.Point.Lon, st.Point.Lat)
		b.WriteString(`  </Placemark>` + "\n")
	}
	b.WriteString(`</Folder>` + "\n")
	b.WriteString(`</Document></kml>` + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing kml: %w", err)
	}
	timeline.Log.Named("export").Info("wrote stations kml",
		zap.String("layer", layer),
		zap.Int("stations", len(stations)))
	return nil
}
