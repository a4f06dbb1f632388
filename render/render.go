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

// Package render is the rendering collaborator: it consumes a scene
// directive sequence and produces numbered PNG frames (and optionally
// an animated GIF) showing the journey over the transit basemap.
//
// Directives are replayed strictly in emission order. Moves and zooms
// interpolate linearly across their duration at the configured frame
// rate; label and line directives take effect instantly.
package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/routereel/routereel/scene"
	"github.com/routereel/routereel/timeline"
	"github.com/routereel/routereel/transit"
)

// Defaults for the output surface.
const (
	DefaultWidth            = 1280
	DefaultHeight           = 720
	DefaultFPS              = 30
	DefaultMaxStationLabels = 20

	labelFontSize = 16
	markerRadius  = 6
)

// Options configure the renderer. Zero values fall back to defaults.
type Options struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	FPS    int    `json:"fps,omitempty"`
	OutDir string `json:"out_dir,omitempty"`

	// GIFPath, when non-empty, additionally assembles the frames into
	// an animated GIF at this path.
	GIFPath string `json:"gif_path,omitempty"`

	// MaxStationLabels caps how many station names are drawn on the
	// basemap; past a point they only overlap.
	MaxStationLabels int `json:"max_station_labels,omitempty"`
}

func (o *Options) fillDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	if o.OutDir == "" {
		o.OutDir = "frames"
	}
	if o.MaxStationLabels <= 0 {
		o.MaxStationLabels = DefaultMaxStationLabels
	}
}

// camera is the current view over scene space: a center point and a
// scale factor, where scale below 1 means zoomed in.
type camera struct {
	center scene.Point
	scale  float64
}

// view converts between scene units and pixels for a camera state.
type view struct {
	width, height float64
	sceneWidth    float64
	cam           camera
}

// toPixel maps a scene point to pixel coordinates under the camera.
// Scene y grows north; pixel y grows down, so the axis flips here.
func (v view) toPixel(p scene.Point) (float64, float64) {
	pxPerUnit := v.width / (v.sceneWidth * v.cam.scale)
	x := v.width/2 + (p.X-v.cam.center.X)*pxPerUnit
	y := v.height/2 - (p.Y-v.cam.center.Y)*pxPerUnit
	return x, y
}

// Renderer replays scene directives into frames over a transit basemap.
type Renderer struct {
	opts    Options
	network *transit.Network
	proj    scene.Projector
	face    font.Face
	log     *zap.Logger
}

// New builds a renderer. The network may be nil, which renders the
// journey over a blank background.
func New(network *transit.Network, proj scene.Projector, opts Options) (*Renderer, error) {
	opts.fillDefaults()

	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}

	return &Renderer{
		opts:    opts,
		network: network,
		proj:    proj,
		face:    truetype.NewFace(f, &truetype.Options{Size: labelFontSize}),
		log:     timeline.Log.Named("render"),
	}, nil
}

// replayState is the mutable world the directive replay accumulates:
// marker position, camera, drawn trail, and visible labels.
type replayState struct {
	marker scene.Point
	cam    camera
	trail  []scene.DrawLine
	labels map[string]scene.ShowLabel
}

// Render replays the directive sequence and writes all output frames.
func (r *Renderer) Render(directives []scene.Directive) error {
	if err := os.MkdirAll(r.opts.OutDir, 0755); err != nil {
		return fmt.Errorf("creating frame directory: %w", err)
	}

	st := &replayState{
		cam:    camera{scale: 1},
		labels: make(map[string]scene.ShowLabel),
	}
	var frames []image.Image
	frameNum := 0

	emit := func() error {
		img := r.drawFrame(st)
		if err := r.writeFrame(img, frameNum); err != nil {
			return err
		}
		if r.opts.GIFPath != "" {
			frames = append(frames, img)
		}
		frameNum++
		return nil
	}

	for _, d := range directives {
		var err error
		switch d := d.(type) {
		case scene.MoveMarker:
			from := st.marker
			err = r.animate(d.Duration, emit, func(t float64) {
				st.marker = lerpPoint(from, d.To, t)
			})
		case scene.MoveCamera:
			from := st.cam.center
			err = r.animate(d.Duration, emit, func(t float64) {
				st.cam.center = lerpPoint(from, d.To, t)
			})
		case scene.ScaleCamera:
			from, to := st.cam.scale, st.cam.scale*d.Factor
			err = r.animate(d.Duration, emit, func(t float64) {
				st.cam.scale = lerp(from, to, t)
			})
		case scene.ShowLabel:
			st.labels[d.ID] = d
		case scene.HideLabel:
			delete(st.labels, d.ID)
		case scene.DrawLine:
			st.trail = append(st.trail, d)
		case scene.Wait:
			err = r.animate(d.Duration, emit, func(float64) {})
		}
		if err != nil {
			return err
		}
	}

	r.log.Info("rendered journey",
		zap.Int("directives", len(directives)),
		zap.Int("frames", frameNum),
		zap.String("out_dir", r.opts.OutDir))

	if r.opts.GIFPath != "" && len(frames) > 0 {
		if err := r.writeGIF(frames); err != nil {
			return err
		}
	}
	return nil
}

// animate emits one frame per tick of the duration at the configured
// frame rate, advancing the interpolation each tick. The final tick
// always lands exactly at t=1 so replays never accumulate drift.
func (r *Renderer) animate(dur time.Duration, emit func() error, step func(t float64)) error {
	n := frameCount(dur, r.opts.FPS)
	for i := 1; i <= n; i++ {
		step(float64(i) / float64(n))
		if err := emit(); err != nil {
			return err
		}
	}
	return nil
}

// frameCount converts a duration to a whole number of frames, always
// at least one so instantaneous directives still appear.
func frameCount(dur time.Duration, fps int) int {
	n := int(math.Round(dur.Seconds() * float64(fps)))
	if n < 1 {
		n = 1
	}
	return n
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpPoint(a, b scene.Point, t float64) scene.Point {
	return scene.Point{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}

// drawFrame renders the full frame for the current replay state:
// basemap, drawn trail, marker, labels.
func (r *Renderer) drawFrame(st *replayState) image.Image {
	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	dc.SetHexColor("#F5F5F0")
	dc.Clear()

	v := view{
		width:      float64(r.opts.Width),
		height:     float64(r.opts.Height),
		sceneWidth: r.proj.Width,
		cam:        st.cam,
	}

	r.drawBasemap(dc, v)

	for _, line := range st.trail {
		x1, y1 := v.toPixel(line.From)
		x2, y2 := v.toPixel(line.To)
		dc.SetHexColor(line.Style.Color)
		dc.SetLineWidth(line.Style.Width)
		if line.Style.Dashed {
			dc.SetDash(6, 4)
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		dc.SetDash()
	}

	mx, my := v.toPixel(st.marker)
	dc.SetHexColor("#FFFFFF")
	dc.DrawCircle(mx, my, markerRadius+2)
	dc.Fill()
	dc.SetHexColor("#EE352E")
	dc.DrawCircle(mx, my, markerRadius)
	dc.Fill()

	dc.SetFontFace(r.face)
	for _, label := range st.labels {
		r.drawLabel(dc, v, label)
	}

	return dc.Image()
}

// drawLabel draws a white rounded box with the label text, anchored
// just above its scene point.
func (r *Renderer) drawLabel(dc *gg.Context, v view, label scene.ShowLabel) {
	x, y := v.toPixel(label.Anchor)
	w, h := dc.MeasureString(label.Text)
	pad := 6.0

	boxX := x - w/2 - pad
	boxY := y - markerRadius - h - 3*pad
	dc.SetHexColor("#FFFFFF")
	dc.DrawRoundedRectangle(boxX, boxY, w+2*pad, h+2*pad, 4)
	dc.Fill()
	dc.SetHexColor("#1A1A1A")
	dc.DrawString(label.Text, x-w/2, boxY+h+pad/2)
}

func (r *Renderer) writeFrame(img image.Image, n int) error {
	path := filepath.Join(r.opts.OutDir, fmt.Sprintf("frame_%05d.png", n))
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("writing frame %d: %w", n, err)
	}
	return nil
}

// writeGIF palettizes every frame and assembles the animation.
func (r *Renderer) writeGIF(frames []image.Image) error {
	anim := &gif.GIF{}
	delay := 100 / r.opts.FPS // GIF delays are in centiseconds

	for _, frame := range frames {
		paletted := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.Draw(paletted, frame.Bounds(), frame, image.Point{}, draw.Src)
		anim.Image = append(anim.Image, paletted)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(r.opts.GIFPath)
	if err != nil {
		return fmt.Errorf("creating gif: %w", err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	r.log.Info("wrote animated gif",
		zap.String("path", r.opts.GIFPath),
		zap.Int("frames", len(frames)))
	return nil
}
