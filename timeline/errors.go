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

import "errors"

// ErrMalformedDocument means the top-level timeline input was not a valid
// record collection at all. It aborts the run; individually malformed
// records inside a valid document are skipped instead.
var ErrMalformedDocument = errors.New("malformed timeline document")

// ErrEmptyInput means a required non-empty coordinate set turned out
// empty, so the journey cannot be framed.
var ErrEmptyInput = errors.New("no coordinates found in timeline data")
