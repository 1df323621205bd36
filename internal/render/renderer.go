/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"log/slog"
	"math"

	applog "gosigil/internal/log"
	"gosigil/internal/sigil"
	"gosigil/internal/vector"
)

// Options sizes every drawn element relative to the nominal radius, so the
// same frame renders proportionally at any output resolution.
type Options struct {
	// RadiusFraction is the nominal shape radius as a fraction of min(w,h).
	RadiusFraction float64
	OutlineWidth   float64
	LineWidth      float64
	// GlowBlur is the halo blur at glow 1.
	GlowBlur float64
	// Padding keeps dots and nodes off the outline.
	Padding    float64
	DotRadius  float64
	NodeRadius float64
	// HubRadius is the disk that caps the center of radial lines.
	HubRadius float64
}

func DefaultOptions() Options {
	return Options{
		RadiusFraction: 0.40,
		OutlineWidth:   0.016,
		LineWidth:      0.008,
		GlowBlur:       0.10,
		Padding:        0.12,
		DotRadius:      0.035,
		NodeRadius:     0.045,
		HubRadius:      0.02,
	}
}

// Mode selects what a render call draws.
type Mode struct {
	// Transparent skips the background fill and leaves the surface clear.
	Transparent bool
	// InnerOnly draws just the clipped inner layers on a transparent surface;
	// vector exporters embed this and draw background and outline natively.
	InnerOnly bool
}

// Renderer draws frames. It holds no per-frame state and can be shared.
type Renderer struct {
	opt Options
	log *slog.Logger
}

func New(opt Options) *Renderer {
	def := DefaultOptions()
	if opt.RadiusFraction <= 0 {
		opt.RadiusFraction = def.RadiusFraction
	}
	if opt.OutlineWidth <= 0 {
		opt.OutlineWidth = def.OutlineWidth
	}
	if opt.LineWidth <= 0 {
		opt.LineWidth = def.LineWidth
	}
	if opt.GlowBlur < 0 {
		opt.GlowBlur = 0
	}
	if opt.Padding <= 0 {
		opt.Padding = def.Padding
	}
	if opt.DotRadius <= 0 {
		opt.DotRadius = def.DotRadius
	}
	if opt.NodeRadius <= 0 {
		opt.NodeRadius = def.NodeRadius
	}
	if opt.HubRadius <= 0 {
		opt.HubRadius = def.HubRadius
	}
	return &Renderer{opt: opt, log: applog.WithComponent("render")}
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opt }

// Layout is the placement of a frame's outline on a surface.
type Layout struct {
	Center  vector.Pt
	Radius  float64
	Outline vector.Outline
	padding float64
}

// LayoutFor centers the outline on a w×h surface.
func (r *Renderer) LayoutFor(f sigil.Frame, w, h int) Layout {
	radius := math.Min(float64(w), float64(h)) * r.opt.RadiusFraction
	return Layout{
		Center:  vector.Pt{X: float64(w) / 2, Y: float64(h) / 2},
		Radius:  radius,
		Outline: f.Outline(),
		padding: radius * r.opt.Padding,
	}
}

// Vertices returns the outline vertices in pixel space; nil for circles.
func (l Layout) Vertices() []vector.Pt {
	if l.Outline.Circle {
		return nil
	}
	return vector.Place(l.Center, l.Radius, 0).ApplyAll(l.Outline.Vertices)
}

// OutlinePath is the pixel-space boundary used both for clipping and for the
// final stroke.
func (l Layout) OutlinePath() vector.Path {
	if l.Outline.Circle {
		var p vector.Path
		p.AddCircle(l.Center.X, l.Center.Y, l.Radius)
		return p
	}
	return vector.Polygon(l.Vertices())
}

// Map converts a normalized point to pixels. Circles read it as a centered
// offset scaled by radius minus padding; polygons as a position inside the
// padded bounding box.
func (l Layout) Map(n vector.Pt) vector.Pt {
	if l.Outline.Circle {
		off := n.Sub(vector.Pt{X: 0.5, Y: 0.5}).Mul(2 * (l.Radius - l.padding))
		return l.Center.Add(off)
	}
	b := l.Outline.Bounds()
	box := vector.R(
		l.Center.X+b.X*l.Radius, l.Center.Y+b.Y*l.Radius,
		b.W*l.Radius, b.H*l.Radius,
	).Inset(l.padding, l.padding)
	return box.Denormalize(n)
}

// Perimeter maps t in [0,1) to a pixel on the outline.
func (l Layout) Perimeter(t float64) vector.Pt {
	return vector.Place(l.Center, l.Radius, 0).Apply(l.Outline.PerimeterPoint(t))
}

// Render draws f onto s: background, glow, clipped inner layers, outline.
// glow in [0,1] scales the halo; 0 draws the settled sigil.
func (r *Renderer) Render(s Surface, f sigil.Frame, glow float64, m Mode) error {
	w, h := s.Size()
	lay := r.LayoutFor(f, w, h)
	fg := f.Appearance.Foreground

	if m.Transparent || m.InnerOnly {
		s.Clear(vector.Transparent)
	} else {
		s.Clear(f.Appearance.Background)
	}

	glow = math.Max(0, math.Min(1, glow))
	if glow > 0 && !m.InnerOnly {
		s.SetGlow(fg.Brighten(0.25*glow), glow*r.opt.GlowBlur*lay.Radius)
	} else {
		s.SetGlow(vector.Transparent, 0)
	}

	outline := lay.OutlinePath()
	s.Save()
	s.Clip(outline)
	err := r.drawLayers(s, f, lay)
	s.Restore()
	if err != nil {
		return err
	}
	if m.InnerOnly {
		return nil
	}

	if err := s.Stroke(outline, r.stroke(fg, r.opt.OutlineWidth*lay.Radius)); err != nil {
		return fmt.Errorf("stroke outline: %w", err)
	}
	s.SetGlow(vector.Transparent, 0)
	r.log.Debug("frame rendered",
		slog.String("shape", string(f.Shape)),
		slog.String("layers_id", f.Layers.ID),
		slog.Float64("glow", glow),
		slog.Int("w", w), slog.Int("h", h))
	return nil
}

func (r *Renderer) stroke(c vector.Color, width float64) vector.Stroke {
	return vector.Stroke{Color: c, Width: math.Max(1, width), Cap: vector.CapRound, Join: vector.JoinRound}
}
