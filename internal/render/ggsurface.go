/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"image"
	"io"

	"github.com/gogpu/gg"

	"gosigil/internal/vector"
)

// haloPasses is the number of widened translucent strokes used to fake blur.
const haloPasses = 3

// GGSurface draws onto a gogpu/gg raster context.
type GGSurface struct {
	ctx   *gg.Context
	glow  glowState
	saved []glowState
}

type glowState struct {
	color vector.Color
	blur  float64
}

// NewGGSurface allocates a w×h raster, cleared to transparent.
func NewGGSurface(w, h int) *GGSurface {
	return &GGSurface{ctx: gg.NewContext(w, h)}
}

func (s *GGSurface) Size() (int, int) { return s.ctx.Width(), s.ctx.Height() }

func (s *GGSurface) Clear(c vector.Color) {
	if c.A == 0 {
		s.ctx.Clear()
		return
	}
	s.ctx.ClearWithColor(toRGBA(c))
}

func (s *GGSurface) Fill(p vector.Path, c vector.Color) error {
	if s.glowing() {
		// Fills glow along their rim.
		if err := s.halo(p, 0); err != nil {
			return err
		}
	}
	s.trace(p)
	s.ctx.SetRGBA(channels(c))
	return s.ctx.Fill()
}

func (s *GGSurface) Stroke(p vector.Path, st vector.Stroke) error {
	if s.glowing() {
		if err := s.halo(p, st.Width); err != nil {
			return err
		}
	}
	s.trace(p)
	s.applyStroke(st.Width, st)
	s.ctx.SetRGBA(channels(st.Color))
	return s.ctx.Stroke()
}

// halo strokes p several times, widest and faintest first, so overlapping
// passes build a soft falloff around the base width.
func (s *GGSurface) halo(p vector.Path, base float64) error {
	c := s.glow.color
	alpha := float64(c.A) / 255 / (haloPasses + 1)
	for i := haloPasses; i >= 1; i-- {
		s.trace(p)
		s.applyStroke(base+s.glow.blur*float64(i)/haloPasses, vector.Stroke{Cap: vector.CapRound, Join: vector.JoinRound})
		s.ctx.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, alpha)
		if err := s.ctx.Stroke(); err != nil {
			return err
		}
	}
	return nil
}

func (s *GGSurface) glowing() bool { return s.glow.blur > 0 && s.glow.color.A > 0 }

func (s *GGSurface) Save() {
	s.saved = append(s.saved, s.glow)
	s.ctx.Push()
}

func (s *GGSurface) Restore() {
	if n := len(s.saved); n > 0 {
		s.glow = s.saved[n-1]
		s.saved = s.saved[:n-1]
	}
	s.ctx.Pop()
}

func (s *GGSurface) Clip(p vector.Path) {
	s.trace(p)
	s.ctx.Clip()
}

func (s *GGSurface) SetGlow(c vector.Color, blur float64) {
	s.glow = glowState{color: c, blur: blur}
}

// Image returns the rendered raster.
func (s *GGSurface) Image() image.Image { return s.ctx.Image() }

// EncodePNG writes the raster as PNG.
func (s *GGSurface) EncodePNG(w io.Writer) error { return s.ctx.EncodePNG(w) }

// Close releases the context.
func (s *GGSurface) Close() error { return s.ctx.Close() }

func (s *GGSurface) trace(p vector.Path) {
	s.ctx.ClearPath()
	for _, c := range p.Cmds {
		d := c.Data
		switch c.Op {
		case vector.MoveTo:
			s.ctx.MoveTo(d[0], d[1])
		case vector.LineTo:
			s.ctx.LineTo(d[0], d[1])
		case vector.QuadTo:
			s.ctx.QuadraticTo(d[0], d[1], d[2], d[3])
		case vector.CubicTo:
			s.ctx.CubicTo(d[0], d[1], d[2], d[3], d[4], d[5])
		case vector.Circle:
			s.ctx.DrawCircle(d[0], d[1], d[2])
		case vector.Close:
			s.ctx.ClosePath()
		}
	}
}

func (s *GGSurface) applyStroke(width float64, st vector.Stroke) {
	s.ctx.SetLineWidth(width)
	switch st.Cap {
	case vector.CapRound:
		s.ctx.SetLineCap(gg.LineCapRound)
	case vector.CapSquare:
		s.ctx.SetLineCap(gg.LineCapSquare)
	default:
		s.ctx.SetLineCap(gg.LineCapButt)
	}
	switch st.Join {
	case vector.JoinRound:
		s.ctx.SetLineJoin(gg.LineJoinRound)
	case vector.JoinBevel:
		s.ctx.SetLineJoin(gg.LineJoinBevel)
	default:
		s.ctx.SetLineJoin(gg.LineJoinMiter)
	}
}

func channels(c vector.Color) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func toRGBA(c vector.Color) gg.RGBA {
	r, g, b, a := channels(c)
	return gg.RGBA{R: r, G: g, B: b, A: a}
}
