/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sigil

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"gosigil/internal/domain"
	"gosigil/internal/vector"
)

// Complexity bounds. Values outside are clamped.
const (
	MinComplexity     = 1
	MaxComplexity     = 5
	DefaultComplexity = 3
)

// placementAttempts is the rejection budget per scatter dot or node.
const placementAttempts = 40

// ClampComplexity forces c into [MinComplexity, MaxComplexity]; zero means default.
func ClampComplexity(c int) int {
	switch {
	case c == 0:
		return DefaultComplexity
	case c < MinComplexity:
		return MinComplexity
	case c > MaxComplexity:
		return MaxComplexity
	}
	return c
}

// countRange narrows [lo,hi] by complexity. Both bounds are non-decreasing in
// c and never leave [lo,hi]:
//
//	lo' = lo + span*(c-1)/8
//	hi' = lo + ceil(span*c/5)
func countRange(lo, hi, c int) (int, int) {
	span := hi - lo
	a := lo + span*(c-1)/8
	b := lo + (span*c+4)/5
	if b > hi {
		b = hi
	}
	if a > b {
		a = b
	}
	return a, b
}

// BuildLayers resolves a complete LayerState for shape. poly is only read when
// shape is random. The result shares nothing with its inputs.
func BuildLayers(shape domain.ShapeType, poly *domain.RandomPolygonSpec, complexity int, rnd vector.Rand) domain.LayerState {
	complexity = ClampComplexity(complexity)
	outline := domain.OutlineFor(shape, poly)
	b := builder{rnd: rnd, outline: outline, complexity: complexity}

	kinds := domain.AllLayerKinds()
	for i := len(kinds) - 1; i > 0; i-- {
		j := intn(rnd, i+1)
		kinds[i], kinds[j] = kinds[j], kinds[i]
	}
	count := 2 + intn(rnd, 2)

	st := domain.LayerState{
		ID:         uuid.NewString(),
		Complexity: complexity,
		Layers:     make([]domain.Layer, 0, count),
	}
	for _, k := range kinds[:count] {
		st.Layers = append(st.Layers, b.layer(k))
	}
	return st
}

type builder struct {
	rnd        vector.Rand
	outline    vector.Outline
	complexity int
}

func (b builder) count(lo, hi int) int {
	a, z := countRange(lo, hi, b.complexity)
	return a + intn(b.rnd, z-a+1)
}

func (b builder) uniform(lo, hi float64) float64 { return vector.Uniform(b.rnd, lo, hi) }

func (b builder) layer(k domain.LayerKind) domain.Layer {
	switch k {
	case domain.KindRadialLines:
		return b.radialLines()
	case domain.KindPerimeterConnections:
		return b.perimeterConnections()
	case domain.KindConcentricShapes:
		return b.concentricShapes()
	case domain.KindScatterDots:
		return b.scatterDots()
	case domain.KindCrossLines:
		return b.crossLines()
	default:
		return b.connectedNodes()
	}
}

func (b builder) radialLines() domain.RadialLines {
	n := b.count(domain.MinRadialLines, domain.MaxRadialLines)
	l := domain.RadialLines{Angles: make([]float64, n)}
	for i := range l.Angles {
		l.Angles[i] = b.uniform(0, 2*math.Pi)
	}
	return l
}

func (b builder) perimeterConnections() domain.PerimeterConnections {
	n := b.count(domain.MinPerimeterPoints, domain.MaxPerimeterPoints)
	l := domain.PerimeterConnections{Positions: make([]float64, n)}
	for i := range l.Positions {
		l.Positions[i] = b.rnd.Float64()
	}
	sort.Float64s(l.Positions)
	switch r := b.rnd.Float64(); {
	case r < 0.4:
		l.Style = domain.StyleSequential
	case r < 0.8:
		l.Style = domain.StyleSkip
	default:
		l.Style = domain.StyleAllPairs
	}
	return l
}

func (b builder) concentricShapes() domain.ConcentricShapes {
	n := b.count(domain.MinRings, domain.MaxRings)
	shapes := domain.RingShapes()
	l := domain.ConcentricShapes{Rings: make([]domain.Ring, n)}
	for i := range l.Rings {
		l.Rings[i] = domain.Ring{
			Shape:    shapes[intn(b.rnd, len(shapes))],
			Scale:    b.uniform(domain.MinRingScale, domain.MaxRingScale),
			Rotation: b.uniform(-domain.MaxRingRotation, domain.MaxRingRotation),
		}
	}
	return l
}

func (b builder) scatterDots() domain.ScatterDots {
	n := b.count(domain.MinScatterDots, domain.MaxScatterDots)
	center := b.outline.NormalizedCenter()
	pts, relaxed := b.place(n, domain.MinScatterDots, func(p vector.Pt, placed []vector.Pt) float64 {
		// clearance is how far the candidate sits beyond its tightest constraint
		c := p.Dist(center) - domain.ScatterCenterExclusion
		for _, q := range placed {
			c = math.Min(c, p.Dist(q)-domain.ScatterSeparation)
		}
		return c
	})
	return domain.ScatterDots{
		Points:      pts,
		RadiusScale: b.uniform(domain.MinScatterRadiusScale, domain.MaxScatterRadiusScale),
		Requested:   n,
		Relaxed:     relaxed,
	}
}

func (b builder) crossLines() domain.CrossLines {
	n := b.count(domain.MinCrossLines, domain.MaxCrossLines)
	l := domain.CrossLines{Lines: make([]domain.CrossLine, n)}
	for i := range l.Lines {
		l.Lines[i] = domain.CrossLine{
			Angle:  b.uniform(0, math.Pi),
			Offset: b.uniform(-domain.MaxCrossOffset, domain.MaxCrossOffset),
		}
	}
	return l
}

func (b builder) connectedNodes() domain.ConnectedNodes {
	n := b.count(domain.MinNodes, domain.MaxNodes)
	pts, relaxed := b.place(n, domain.MinNodes, func(p vector.Pt, placed []vector.Pt) float64 {
		c := math.Inf(1)
		for _, q := range placed {
			c = math.Min(c, p.Dist(q)-domain.NodeSeparation)
		}
		return c
	})
	l := domain.ConnectedNodes{
		Nodes:     pts,
		Requested: n,
		Relaxed:   relaxed,
	}
	switch r := b.rnd.Float64(); {
	case r < 0.4:
		l.Style = domain.StyleChain
	case r < 0.7:
		l.Style = domain.StyleStar
	default:
		l.Style = domain.StyleAllPairs
	}
	l.RadiusScale = b.uniform(domain.MinNodeRadiusScale, domain.MaxNodeRadiusScale)
	return l
}

// place draws up to want points by rejection sampling. A candidate is accepted
// once clearance(candidate, placed) >= 0. When a point exhausts its budget the
// bundle stops short if it already holds atLeast points; otherwise the candidate
// with the best clearance is taken and relaxed is reported.
func (b builder) place(want, atLeast int, clearance func(vector.Pt, []vector.Pt) float64) (pts []vector.Pt, relaxed bool) {
	pts = make([]vector.Pt, 0, want)
	for len(pts) < want {
		var best vector.Pt
		bestScore := math.Inf(-1)
		accepted := false
		for i := 0; i < placementAttempts; i++ {
			p := b.outline.SamplePoint(b.rnd, vector.DefaultSampleAttempts)
			score := clearance(p, pts)
			if score >= 0 {
				pts = append(pts, p)
				accepted = true
				break
			}
			if score > bestScore {
				best, bestScore = p, score
			}
		}
		if accepted {
			continue
		}
		if len(pts) >= atLeast {
			break
		}
		pts = append(pts, best)
		relaxed = true
	}
	return pts, relaxed
}
