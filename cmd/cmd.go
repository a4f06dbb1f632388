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

// Package rrcmd facilitates the command line interface (CLI)
// and implements the main(): one full pipeline run over one
// timeline document, then exit.
package rrcmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mholt/archives"
	"go.uber.org/zap"

	"github.com/routereel/routereel/export"
	"github.com/routereel/routereel/render"
	"github.com/routereel/routereel/scene"
	"github.com/routereel/routereel/timeline"
	"github.com/routereel/routereel/transit"
)

// transitFetchTimeout bounds the one network read the pipeline may do.
const transitFetchTimeout = 30 * time.Second

// Config is the run configuration, loadable from a JSON file and
// overridable by flags.
type Config struct {
	// TimelinePath is the location-history document: a bare .json file
	// or a Takeout .zip containing one.
	TimelinePath string `json:"timeline_path,omitempty"`

	// TransitSource is a GeoJSON network component: a local file path
	// or an HTTP(S) URL (e.g. a loom.cs.uni-freiburg.de component).
	TransitSource string `json:"transit_source,omitempty"`

	// TransitKind names the rail type for map exports (SUBWAY_LIGHTRAIL,
	// TRAM, COMMUTER_RAIL).
	TransitKind string `json:"transit_kind,omitempty"`

	// Demo generates a fake journey instead of reading TimelinePath.
	Demo bool `json:"demo,omitempty"`

	SnapTolerance  float64 `json:"snap_tolerance,omitempty"`
	TargetAspect   float64 `json:"target_aspect,omitempty"`
	MinSpanDegrees float64 `json:"min_span_degrees,omitempty"`
	PadFraction    float64 `json:"pad_fraction,omitempty"`

	WalkZoomFactor  float64 `json:"walk_zoom_factor,omitempty"`
	SimplifyEpsilon float64 `json:"simplify_epsilon,omitempty"`

	// LocalTimes resolves visit timezones so labels show local
	// wall-clock arrival times.
	LocalTimes bool `json:"local_times,omitempty"`

	Render render.Options `json:"render,omitempty"`

	// ExportDir, when set, additionally writes the transit network as
	// My Maps CSV/KML layers there.
	ExportDir string `json:"export_dir,omitempty"`
}

func (c *Config) fillDefaults() {
	if c.TransitKind == "" {
		c.TransitKind = export.KindSubwayLightrail
	}
	if c.SnapTolerance == 0 {
		c.SnapTolerance = transit.DefaultSnapTolerance
	}
	if c.TargetAspect == 0 {
		c.TargetAspect = timeline.DefaultTargetAspect
	}
	if c.MinSpanDegrees == 0 {
		c.MinSpanDegrees = timeline.DefaultMinSpanDegrees
	}
	if c.PadFraction == 0 {
		c.PadFraction = timeline.DefaultPadFraction
	}
	if c.WalkZoomFactor == 0 {
		c.WalkZoomFactor = scene.DefaultWalkZoomFactor
	}
}

func Main() {
	var (
		configFile = flag.String("config", "", "path to JSON config file")
		timelineIn = flag.String("timeline", "", "timeline document (.json or Takeout .zip)")
		transitIn  = flag.String("transit", "", "transit network GeoJSON (file path or URL)")
		demo       = flag.Bool("demo", false, "animate a generated demo journey")
		exportDir  = flag.String("export-dir", "", "also write My Maps CSV/KML layers here")
		gifPath    = flag.String("gif", "", "also assemble frames into an animated GIF")
		framesDir  = flag.String("frames-dir", "", "directory for numbered PNG frames")
		localTimes = flag.Bool("local-times", false, "show local arrival times on visit labels")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	if *verbose {
		timeline.SetVerbose()
	}

	cfg, err := loadConfigFile(*configFile)
	if err != nil {
		timeline.Log.Fatal("failed loading config", zap.Error(err))
	}
	if *timelineIn != "" {
		cfg.TimelinePath = *timelineIn
	}
	if *transitIn != "" {
		cfg.TransitSource = *transitIn
	}
	if *demo {
		cfg.Demo = true
	}
	if *exportDir != "" {
		cfg.ExportDir = *exportDir
	}
	if *gifPath != "" {
		cfg.Render.GIFPath = *gifPath
	}
	if *framesDir != "" {
		cfg.Render.OutDir = *framesDir
	}
	if *localTimes {
		cfg.LocalTimes = true
	}
	cfg.fillDefaults()

	if err := run(context.Background(), cfg); err != nil {
		timeline.Log.Fatal("pipeline failed", zap.Error(err))
	}
}

// run executes one full pipeline over one timeline document: parse,
// load network, snap, frame, sequence, render, export. Each stage
// consumes the previous stage's output; nothing is mutated in place.
func run(ctx context.Context, cfg *Config) error {
	activities, err := loadActivities(ctx, cfg)
	if err != nil {
		return err
	}

	var network *transit.Network
	if cfg.TransitSource != "" {
		data, err := fetchTransit(ctx, cfg.TransitSource)
		if err != nil {
			return err
		}
		if network, err = transit.Load(data); err != nil {
			return err
		}
	}

	snapped := make(map[int][]transit.SnappedStation)
	if network != nil {
		for i, act := range activities {
			seg, ok := act.(timeline.MovementSegment)
			if !ok || seg.Mode != timeline.ModeSubway {
				continue
			}
			if stations := transit.SnapToStations(seg, network.Stations, cfg.SnapTolerance); len(stations) > 0 {
				snapped[i] = stations
			}
		}
	}

	bounds, err := timeline.ComputeBounds(activities, cfg.TargetAspect, cfg.MinSpanDegrees, cfg.PadFraction)
	if err != nil {
		return err
	}

	seqOpts := scene.SequencerOptions{
		WalkZoomFactor:  cfg.WalkZoomFactor,
		SimplifyEpsilon: cfg.SimplifyEpsilon,
	}
	if cfg.LocalTimes {
		tz, err := timeline.NewTimeZoner()
		if err != nil {
			timeline.Log.Warn("timezone resolution unavailable; labels will use UTC", zap.Error(err))
		} else {
			seqOpts.TimeZones = tz
		}
	}

	proj := scene.NewProjector(bounds)
	directives := scene.NewSequencer(proj, seqOpts).Sequence(activities, snapped)

	renderer, err := render.New(network, proj, cfg.Render)
	if err != nil {
		return err
	}
	if err := renderer.Render(directives); err != nil {
		return err
	}

	if cfg.ExportDir != "" && network != nil {
		if err := exportLayers(network, cfg); err != nil {
			return err
		}
	}
	return nil
}

// loadActivities produces the activity sequence, either generated for
// demo runs or parsed from the configured timeline document.
func loadActivities(ctx context.Context, cfg *Config) ([]timeline.Activity, error) {
	if cfg.Demo {
		return timeline.FakeJourney(timeline.FakeJourneyOptions{Places: 4}), nil
	}
	if cfg.TimelinePath == "" {
		return nil, errors.New("no timeline document configured (use -timeline or -demo)")
	}

	data, err := readTimelineDocument(ctx, cfg.TimelinePath)
	if err != nil {
		return nil, err
	}
	return timeline.NewParser().Parse(data)
}

// readTimelineDocument reads the timeline JSON whether it is a bare
// file or inside a Takeout archive. archives.FileSystem presents both
// uniformly; for archives we walk for the first .json document, which
// in a Semantic Location History export is one month of activity.
func readTimelineDocument(ctx context.Context, filename string) ([]byte, error) {
	fsys, err := archives.FileSystem(ctx, filename, nil)
	if err != nil {
		return nil, fmt.Errorf("opening timeline input: %w", err)
	}

	var jsonPath string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".json" {
			return nil
		}
		jsonPath = p
		return fs.SkipAll
	})
	if err != nil {
		return nil, fmt.Errorf("scanning timeline input: %w", err)
	}
	if jsonPath == "" {
		return nil, fmt.Errorf("no .json timeline document found in %s", filename)
	}

	timeline.Log.Debug("reading timeline document",
		zap.String("input", filename),
		zap.String("document", jsonPath))

	data, err := fs.ReadFile(fsys, jsonPath)
	if err != nil {
		return nil, fmt.Errorf("reading timeline document: %w", err)
	}
	return data, nil
}

// fetchTransit reads the transit network from a local file or an
// HTTP(S) URL. Network failures are fatal for the run; there is no
// meaningful animation without the configured network.
func fetchTransit(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading transit network: %w", err)
		}
		return data, nil
	}

	ctx, cancel := context.WithTimeout(ctx, transitFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("building transit request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching transit network: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching transit network: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading transit response: %w", err)
	}

	timeline.Log.Info("fetched transit network",
		zap.String("url", source),
		zap.Int("bytes", len(data)))
	return data, nil
}

// exportLayers writes the network as My Maps importable layers:
// stations CSV, lines CSV, and stations KML.
func exportLayers(network *transit.Network, cfg *Config) error {
	if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	write := func(name string, fn func(io.Writer) error) error {
		f, err := os.Create(filepath.Join(cfg.ExportDir, name))
		if err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
		defer f.Close()
		return fn(f)
	}

	if err := write("stations.csv", func(w io.Writer) error {
		return export.WriteStationsCSV(w, network.Stations, cfg.TransitKind)
	}); err != nil {
		return err
	}
	if err := write("lines.csv", func(w io.Writer) error {
		return export.WriteLinesCSV(w, network.Lines)
	}); err != nil {
		return err
	}
	return write("stations.kml", func(w io.Writer) error {
		return export.WriteStationsKML(w, network.Stations, strings.ToLower(cfg.TransitKind))
	})
}

func loadConfigFile(filename string) (*Config, error) {
	if filename == "" {
		return new(Config), nil
	}
	cfgBytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	if err := json.Unmarshal(cfgBytes, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
