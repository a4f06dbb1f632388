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
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/routereel/routereel/timeline"
	"github.com/routereel/routereel/transit"
)

// ModeColors are the path colors drawn per activity mode; MTA-inspired.
var ModeColors = map[string]string{
	timeline.ModeWalking: "#FFD320",
	timeline.ModeSubway:  "#EE352E",
	timeline.ModeDriving: "#FF6319",
	timeline.ModeCycling: "#00933C",
}

// DefaultModeColor is used for modes without an entry in ModeColors.
const DefaultModeColor = "#53565A"

// DefaultWalkZoomFactor is the camera scale applied while walking.
// Its exact inverse restores the camera afterward.
const DefaultWalkZoomFactor = 0.5

// Pacing of the emitted animation.
const (
	visitMoveDuration    = time.Second
	stationMoveDuration  = 800 * time.Millisecond
	waypointMoveDuration = 300 * time.Millisecond
	zoomDuration         = time.Second
	labelHoldDuration    = 1500 * time.Millisecond
)

// SequencerOptions tune the journey walk. The zero value is usable.
type SequencerOptions struct {
	// WalkZoomFactor is the camera scale while walking; 0 means
	// DefaultWalkZoomFactor. Must be positive when set.
	WalkZoomFactor float64

	// SimplifyEpsilon, when positive, RDP-simplifies walking waypoints
	// before sequencing. Never applied to subway segments, whose
	// waypoints feed station snapping instead.
	SimplifyEpsilon float64

	// TimeZones, when set, appends the local arrival wall-clock time to
	// named place-visit labels.
	TimeZones *timeline.TimeZoner
}

// Sequencer turns an ordered activity sequence into scene directives.
type Sequencer struct {
	Projector Projector
	Options   SequencerOptions

	log *zap.Logger
}

// NewSequencer builds a sequencer over the given projector.
func NewSequencer(p Projector, opts SequencerOptions) *Sequencer {
	if opts.WalkZoomFactor == 0 {
		opts.WalkZoomFactor = DefaultWalkZoomFactor
	}
	return &Sequencer{
		Projector: p,
		Options:   opts,
		log:       timeline.Log.Named("sequencer"),
	}
}

// Sequence walks the activities in input order and emits the directive
// stream. snapped maps an activity's index to its snapped stations; only
// subway segments have entries. Emission order is the contract: one
// activity's directives are never interleaved with another's, and every
// destination is relative to the running marker position, which this
// function threads through the walk as an explicit accumulator.
func (s *Sequencer) Sequence(activities []timeline.Activity, snapped map[int][]transit.SnappedStation) []Directive {
	var directives []Directive
	var cursor Point

	for i, act := range activities {
		switch a := act.(type) {
		case timeline.PlaceVisit:
			directives, cursor = s.placeVisit(directives, a)
		case timeline.MovementSegment:
			switch {
			case a.Mode == timeline.ModeSubway && len(snapped[i]) > 0:
				directives, cursor = s.subwayRide(directives, snapped[i])
			case a.Mode == timeline.ModeWalking:
				directives, cursor = s.walk(directives, cursor, a)
			default:
				directives, cursor = s.genericMove(directives, cursor, a)
			}
		}
	}

	s.log.Info("sequenced journey",
		zap.Int("activities", len(activities)),
		zap.Int("directives", len(directives)))

	return directives
}

// placeVisit moves the marker to the visit location and, when the visit
// is named, shows a transient label there.
func (s *Sequencer) placeVisit(directives []Directive, v timeline.PlaceVisit) ([]Directive, Point) {
	pt := s.Projector.Project(v.Location)
	directives = append(directives, MoveMarker{To: pt, Duration: visitMoveDuration})

	if v.Name != "" {
		directives = s.transientLabel(directives, s.visitLabelText(v), pt)
	}
	return directives, pt
}

// visitLabelText is the visit's name, with the local arrival time
// appended when a timezone resolver is available.
func (s *Sequencer) visitLabelText(v timeline.PlaceVisit) string {
	if s.Options.TimeZones == nil || v.Start.IsZero() {
		return v.Name
	}
	local := s.Options.TimeZones.Localize(v.Start, v.Location)
	return fmt.Sprintf("%s (%s)", v.Name, local.Format("15:04"))
}

// subwayRide emits one marker move per snapped station in journey
// order, each with a transient station label.
func (s *Sequencer) subwayRide(directives []Directive, stations []transit.SnappedStation) ([]Directive, Point) {
	var cursor Point
	for _, st := range stations {
		cursor = s.Projector.Project(st.Station.Point)
		directives = append(directives, MoveMarker{To: cursor, Duration: stationMoveDuration})
		directives = s.transientLabel(directives, st.Label, cursor)
	}
	return directives, cursor
}

// walk zooms the camera in, traces the path waypoint by waypoint with
// marker, camera pan, and a drawn trail, then zooms back out with the
// exact inverse factor so the camera never drifts across a timeline.
func (s *Sequencer) walk(directives []Directive, cursor Point, seg timeline.MovementSegment) ([]Directive, Point) {
	zoom := s.Options.WalkZoomFactor
	directives = append(directives, ScaleCamera{Factor: zoom, Duration: zoomDuration})

	waypoints := seg.Waypoints
	if s.Options.SimplifyEpsilon > 0 {
		waypoints = timeline.SimplifyPath(waypoints, s.Options.SimplifyEpsilon)
	}

	path := make([]timeline.Coordinate, 0, len(waypoints)+1)
	path = append(path, waypoints...)
	path = append(path, seg.To)

	style := LineStyle{Color: ModeColors[timeline.ModeWalking], Width: 2}
	for _, wp := range path {
		pt := s.Projector.Project(wp)
		directives = append(directives,
			DrawLine{From: cursor, To: pt, Style: style},
			MoveMarker{To: pt, Duration: waypointMoveDuration},
			MoveCamera{To: pt, Duration: waypointMoveDuration},
		)
		cursor = pt
	}

	directives = append(directives, ScaleCamera{Factor: 1 / zoom, Duration: zoomDuration})
	return directives, cursor
}

// genericMove covers every other movement mode, and subway rides that
// snapped to no station: move to the start, draw the leg, move to the
// end.
func (s *Sequencer) genericMove(directives []Directive, cursor Point, seg timeline.MovementSegment) ([]Directive, Point) {
	from := s.Projector.Project(seg.From)
	to := s.Projector.Project(seg.To)

	color, ok := ModeColors[seg.Mode]
	if !ok {
		color = DefaultModeColor
	}

	directives = append(directives,
		MoveMarker{To: from, Duration: visitMoveDuration},
		DrawLine{From: from, To: to, Style: LineStyle{Color: color, Width: 2, Dashed: true}},
		MoveMarker{To: to, Duration: visitMoveDuration},
	)
	return directives, to
}

// transientLabel appends a ShowLabel/Wait/HideLabel triple.
func (s *Sequencer) transientLabel(directives []Directive, text string, anchor Point) []Directive {
	id := newLabelID()
	return append(directives,
		ShowLabel{ID: id, Text: text, Anchor: anchor},
		Wait{Duration: labelHoldDuration},
		HideLabel{ID: id},
	)
}
