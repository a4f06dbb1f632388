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
	"fmt"
	"time"

	"github.com/ringsaturn/tzf"
	"go.uber.org/zap"
)

// TimeZoner resolves the IANA timezone at a coordinate so that activity
// timestamps can be shown in the journey's local wall-clock time. The
// finder's polygon data is embedded, so construction is offline but not
// free; build one and share it for a whole run.
type TimeZoner struct {
	finder tzf.F
	log    *zap.Logger
}

// NewTimeZoner builds a timezone resolver.
func NewTimeZoner() (*TimeZoner, error) {
	finder, err := tzf.NewDefaultFinder()
	if err != nil {
		return nil, fmt.Errorf("initializing timezone finder: %w", err)
	}
	return &TimeZoner{
		finder: finder,
		log:    Log.Named("timezone"),
	}, nil
}

// Localize converts ts to the local time at c. Unresolvable zones
// degrade to UTC rather than failing.
func (tz *TimeZoner) Localize(ts time.Time, c Coordinate) time.Time {
	name := tz.finder.GetTimezoneName(c.Lon, c.Lat)
	if name == "" {
		return ts.UTC()
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		tz.log.Debug("unknown timezone name; using UTC",
			zap.String("timezone", name),
			zap.Error(err))
		return ts.UTC()
	}
	return ts.In(loc)
}
