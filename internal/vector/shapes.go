/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "math"

// Rand is a uniform [0,1) source. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Uniform draws from [lo,hi).
func Uniform(rnd Rand, lo, hi float64) float64 { return lo + rnd.Float64()*(hi-lo) }

// DefaultSampleAttempts bounds SamplePoint's rejection loop.
const DefaultSampleAttempts = 50

// RegularPolygon returns sides vertices evenly spaced on the unit circle,
// the first one at startAngle.
func RegularPolygon(sides int, startAngle float64) []Pt {
	if sides < 3 {
		return nil
	}
	pts := make([]Pt, sides)
	step := 2 * math.Pi / float64(sides)
	for i := range pts {
		pts[i] = Polar(startAngle+step*float64(i), 1)
	}
	return pts
}

// StarPolygon returns 2*points vertices alternating between outer and inner radius.
func StarPolygon(outer, inner float64, points int, startAngle float64) []Pt {
	if points < 2 {
		return nil
	}
	pts := make([]Pt, 2*points)
	step := math.Pi / float64(points)
	for i := range pts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts[i] = Polar(startAngle+step*float64(i), r)
	}
	return pts
}

// PointInPolygon is the even-odd ray casting test.
func PointInPolygon(p Pt, poly []Pt) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Outline is a shape boundary in the unit frame: either the unit circle or a
// closed polygon given by its vertices.
type Outline struct {
	Circle   bool
	Vertices []Pt
}

// CircleOutline is the unit circle.
func CircleOutline() Outline { return Outline{Circle: true} }

// PolygonOutline wraps vertices; the slice is copied.
func PolygonOutline(vertices []Pt) Outline {
	return Outline{Vertices: append([]Pt(nil), vertices...)}
}

// Bounds returns the unit-frame bounding box.
func (o Outline) Bounds() Rect {
	if o.Circle {
		return R(-1, -1, 2, 2)
	}
	return BoundingBox(o.Vertices)
}

// Contains tests membership analytically for circles, by ray casting otherwise.
func (o Outline) Contains(p Pt) bool {
	if o.Circle {
		return p.Len() <= 1
	}
	return PointInPolygon(p, o.Vertices)
}

// Perimeter returns the boundary length in unit-frame units.
func (o Outline) Perimeter() float64 {
	if o.Circle {
		return 2 * math.Pi
	}
	total := 0.0
	for i := range o.Vertices {
		total += o.Vertices[i].Dist(o.Vertices[(i+1)%len(o.Vertices)])
	}
	return total
}

// PerimeterPoint maps t in [0,1) onto the boundary: by angle for circles and by
// arc length for polygons. t=0 is exactly the first vertex.
func (o Outline) PerimeterPoint(t float64) Pt {
	t -= math.Floor(t)
	if o.Circle {
		return Polar(t*2*math.Pi, 1)
	}
	n := len(o.Vertices)
	if n == 0 {
		return Pt{}
	}
	target := t * o.Perimeter()
	acc := 0.0
	for i := 0; i < n; i++ {
		a, b := o.Vertices[i], o.Vertices[(i+1)%n]
		edge := a.Dist(b)
		if acc+edge > target {
			if edge == 0 {
				return a
			}
			return a.Lerp(b, (target-acc)/edge)
		}
		acc += edge
	}
	return o.Vertices[0]
}

// NormalizedCenter is the unit-frame origin expressed in the normalized
// [0,1]² frame that SamplePoint returns.
func (o Outline) NormalizedCenter() Pt {
	if o.Circle {
		return Pt{0.5, 0.5}
	}
	return o.Bounds().Normalize(Pt{})
}

// SamplePoint draws a normalized point inside the shape. Circles sample the
// disk area-uniformly around (0.5,0.5) with radius 0.5. Polygons sample the
// bounding box and retry up to attempts times; on exhaustion the shape center
// is returned.
func (o Outline) SamplePoint(rnd Rand, attempts int) Pt {
	if o.Circle {
		angle := Uniform(rnd, 0, 2*math.Pi)
		r := math.Sqrt(rnd.Float64()) * 0.5
		return Pt{0.5, 0.5}.Add(Polar(angle, r))
	}
	if attempts <= 0 {
		attempts = DefaultSampleAttempts
	}
	box := o.Bounds()
	for i := 0; i < attempts; i++ {
		n := Pt{rnd.Float64(), rnd.Float64()}
		if PointInPolygon(box.Denormalize(n), o.Vertices) {
			return n
		}
	}
	return o.NormalizedCenter()
}

// Simple reports whether no two non-adjacent edges of the closed polygon cross.
func Simple(poly []Pt) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		for j := i + 1; j < n; j++ {
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if SegmentsIntersect(a, b, poly[j], poly[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}
