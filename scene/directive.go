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

package scene

import (
	"time"

	"github.com/google/uuid"
)

// Directive is one instruction to the rendering collaborator. The set
// is closed: MoveMarker, MoveCamera, ScaleCamera, ShowLabel, HideLabel,
// DrawLine, and Wait. Directives must be executed strictly in emission
// order; the sequencer never emits anything that is safe to reorder.
type Directive interface {
	isDirective()
}

// MoveMarker moves the journey marker to a scene point over Duration.
type MoveMarker struct {
	To       Point
	Duration time.Duration
}

// MoveCamera pans the camera so its view centers on a scene point.
type MoveCamera struct {
	To       Point
	Duration time.Duration
}

// ScaleCamera zooms the camera by a multiplicative factor. A factor
// below 1 zooms in (the view covers less scene area). Paired zooms use
// exact-inverse factors so a full replay leaves the camera where it
// started.
type ScaleCamera struct {
	Factor   float64
	Duration time.Duration
}

// ShowLabel displays a text label anchored at a scene point. ID links
// the label to the HideLabel that removes it.
type ShowLabel struct {
	ID     string
	Text   string
	Anchor Point
}

// HideLabel removes a previously shown label.
type HideLabel struct {
	ID string
}

// LineStyle describes how a drawn path segment looks.
type LineStyle struct {
	Color  string // #RRGGBB
	Width  float64
	Dashed bool
}

// DrawLine draws a permanent path segment between two scene points.
type DrawLine struct {
	From  Point
	To    Point
	Style LineStyle
}

// Wait holds the current frame for a duration.
type Wait struct {
	Duration time.Duration
}

func (MoveMarker) isDirective()  {}
func (MoveCamera) isDirective()  {}
func (ScaleCamera) isDirective() {}
func (ShowLabel) isDirective()   {}
func (HideLabel) isDirective()   {}
func (DrawLine) isDirective()    {}
func (Wait) isDirective()        {}

// newLabelID mints a label identity. Random UUIDs keep IDs unique even
// when the same text labels several stops.
func newLabelID() string {
	return uuid.NewString()
}
