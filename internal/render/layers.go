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
	"math"

	"gosigil/internal/domain"
	"gosigil/internal/sigil"
	"gosigil/internal/vector"
)

func (r *Renderer) drawLayers(s Surface, f sigil.Frame, lay Layout) error {
	for _, l := range f.Layers.Layers {
		var err error
		switch l := l.(type) {
		case domain.RadialLines:
			err = r.drawRadial(s, f, lay, l)
		case domain.PerimeterConnections:
			err = r.drawPerimeter(s, f, lay, l)
		case domain.ConcentricShapes:
			err = r.drawRings(s, f, lay, l)
		case domain.ScatterDots:
			err = r.drawScatter(s, f, lay, l)
		case domain.CrossLines:
			err = r.drawCross(s, f, lay, l)
		case domain.ConnectedNodes:
			err = r.drawNodes(s, f, lay, l)
		}
		if err != nil {
			return fmt.Errorf("draw %s: %w", l.Kind(), err)
		}
	}
	return nil
}

func (r *Renderer) line(lay Layout, c vector.Color) vector.Stroke {
	return r.stroke(c, r.opt.LineWidth*lay.Radius)
}

func (r *Renderer) drawRadial(s Surface, f sigil.Frame, lay Layout, l domain.RadialLines) error {
	st := r.line(lay, f.Appearance.Foreground)
	for _, a := range l.Angles {
		end := lay.Center.Add(vector.Polar(a, lay.Radius))
		if err := s.Stroke(vector.Segment(lay.Center, end), st); err != nil {
			return err
		}
	}
	var hub vector.Path
	hub.AddCircle(lay.Center.X, lay.Center.Y, math.Max(1, r.opt.HubRadius*lay.Radius))
	return s.Fill(hub, f.Appearance.Foreground)
}

func (r *Renderer) drawPerimeter(s Surface, f sigil.Frame, lay Layout, l domain.PerimeterConnections) error {
	pts := make([]vector.Pt, len(l.Positions))
	for i, t := range l.Positions {
		pts[i] = lay.Perimeter(t)
	}
	return r.drawEdges(s, pts, l.Style.Edges(len(pts)), r.line(lay, f.Appearance.Foreground))
}

func (r *Renderer) drawEdges(s Surface, pts []vector.Pt, edges [][2]int, st vector.Stroke) error {
	if len(edges) == 0 {
		return nil
	}
	var p vector.Path
	for _, e := range edges {
		a, b := pts[e[0]], pts[e[1]]
		p.MoveTo(a.X, a.Y)
		p.LineTo(b.X, b.Y)
	}
	return s.Stroke(p, st)
}

func (r *Renderer) drawRings(s Surface, f sigil.Frame, lay Layout, l domain.ConcentricShapes) error {
	st := r.line(lay, f.Appearance.Foreground)
	for _, ring := range l.Rings {
		if err := s.Stroke(RingPath(lay, ring), st); err != nil {
			return err
		}
	}
	return nil
}

// RingPath is the pixel-space outline of one concentric ring. Circles ignore
// the ring rotation.
func RingPath(lay Layout, ring domain.Ring) vector.Path {
	out := domain.OutlineFor(ring.Shape, nil)
	radius := lay.Radius * ring.Scale
	if out.Circle {
		var p vector.Path
		p.AddCircle(lay.Center.X, lay.Center.Y, radius)
		return p
	}
	return vector.Polygon(vector.Place(lay.Center, radius, ring.Rotation).ApplyAll(out.Vertices))
}

func (r *Renderer) drawScatter(s Surface, f sigil.Frame, lay Layout, l domain.ScatterDots) error {
	rad := math.Max(0.5, r.opt.DotRadius*lay.Radius*l.RadiusScale)
	var p vector.Path
	for _, n := range l.Points {
		c := lay.Map(n)
		p.AddCircle(c.X, c.Y, rad)
	}
	if p.Empty() {
		return nil
	}
	return s.Fill(p, f.Appearance.Foreground)
}

func (r *Renderer) drawCross(s Surface, f sigil.Frame, lay Layout, l domain.CrossLines) error {
	st := r.line(lay, f.Appearance.Foreground)
	for _, cl := range l.Lines {
		a, b := Chord(lay, cl)
		if err := s.Stroke(vector.Segment(a, b), st); err != nil {
			return err
		}
	}
	return nil
}

// Chord returns the endpoints of a cross line. The segment extends a full
// diameter each way; the clip trims it to the outline.
func Chord(lay Layout, cl domain.CrossLine) (vector.Pt, vector.Pt) {
	dir := vector.Polar(cl.Angle, 1)
	normal := vector.Pt{X: -dir.Y, Y: dir.X}
	mid := lay.Center.Add(normal.Mul(cl.Offset * lay.Radius))
	reach := dir.Mul(2 * lay.Radius)
	return mid.Sub(reach), mid.Add(reach)
}

func (r *Renderer) drawNodes(s Surface, f sigil.Frame, lay Layout, l domain.ConnectedNodes) error {
	pts := make([]vector.Pt, len(l.Nodes))
	for i, n := range l.Nodes {
		pts[i] = lay.Map(n)
	}
	st := r.line(lay, f.Appearance.Foreground)
	if err := r.drawEdges(s, pts, l.Style.Edges(len(pts)), st); err != nil {
		return err
	}
	rad := math.Max(1, r.opt.NodeRadius*lay.Radius*l.RadiusScale)
	for _, c := range pts {
		var disk vector.Path
		disk.AddCircle(c.X, c.Y, rad)
		if err := s.Fill(disk, f.Appearance.Background); err != nil {
			return err
		}
		if err := s.Stroke(disk, st); err != nil {
			return err
		}
	}
	return nil
}
