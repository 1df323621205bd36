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
	"testing"

	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosigil/internal/domain"
	"gosigil/internal/vector"
)

func TestCountRangeMonotonic(t *testing.T) {
	ranges := [][2]int{{3, 8}, {2, 4}, {5, 15}, {1, 3}, {4, 7}}
	for _, r := range ranges {
		prevA, prevB := r[0], r[0]
		for c := MinComplexity; c <= MaxComplexity; c++ {
			a, b := countRange(r[0], r[1], c)
			require.GreaterOrEqual(t, a, r[0])
			require.LessOrEqual(t, b, r[1])
			require.LessOrEqual(t, a, b)
			require.GreaterOrEqual(t, a, prevA, "lower bound drops at c=%d for %v", c, r)
			require.GreaterOrEqual(t, b, prevB, "upper bound drops at c=%d for %v", c, r)
			prevA, prevB = a, b
		}
		_, top := countRange(r[0], r[1], MaxComplexity)
		assert.Equal(t, r[1], top, "max complexity reaches the full range for %v", r)
	}
}

func TestClampComplexity(t *testing.T) {
	assert.Equal(t, DefaultComplexity, ClampComplexity(0))
	assert.Equal(t, MinComplexity, ClampComplexity(-4))
	assert.Equal(t, MaxComplexity, ClampComplexity(99))
	assert.Equal(t, 2, ClampComplexity(2))
}

func inUnit(p vector.Pt) bool { return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1 }

// checkLayerState verifies the structural guarantees every generation makes.
func checkLayerState(st domain.LayerState, outline vector.Outline) bool {
	if n := len(st.Layers); n < 2 || n > 3 {
		return false
	}
	seen := map[domain.LayerKind]bool{}
	for _, l := range st.Layers {
		if seen[l.Kind()] {
			return false
		}
		seen[l.Kind()] = true
		switch l := l.(type) {
		case domain.RadialLines:
			for _, a := range l.Angles {
				if a < 0 || a >= 2*math.Pi {
					return false
				}
			}
		case domain.PerimeterConnections:
			for i, p := range l.Positions {
				if p < 0 || p >= 1 || (i > 0 && p < l.Positions[i-1]) {
					return false
				}
			}
		case domain.ScatterDots:
			if len(l.Points) > l.Requested || len(l.Points) < domain.MinScatterDots {
				return false
			}
			center := outline.NormalizedCenter()
			for i, p := range l.Points {
				if !inUnit(p) {
					return false
				}
				if l.Relaxed {
					continue
				}
				if p.Dist(center) < domain.ScatterCenterExclusion {
					return false
				}
				for _, q := range l.Points[:i] {
					if p.Dist(q) < domain.ScatterSeparation {
						return false
					}
				}
			}
		case domain.ConnectedNodes:
			if len(l.Nodes) > l.Requested || len(l.Nodes) < domain.MinNodes {
				return false
			}
			for i, p := range l.Nodes {
				if !inUnit(p) {
					return false
				}
				if l.Relaxed {
					continue
				}
				for _, q := range l.Nodes[:i] {
					if p.Dist(q) < domain.NodeSeparation {
						return false
					}
				}
			}
		case domain.ConcentricShapes:
			for _, r := range l.Rings {
				if r.Shape == domain.ShapeRandom || r.Scale < domain.MinRingScale || r.Scale > domain.MaxRingScale {
					return false
				}
			}
		case domain.CrossLines:
			for _, c := range l.Lines {
				if math.Abs(c.Offset) > domain.MaxCrossOffset {
					return false
				}
			}
		}
	}
	return true
}

func TestBuildLayersProperties(t *testing.T) {
	props := properties(t, 300)
	shapes := make([]any, 0, len(domain.AllShapes()))
	for _, s := range domain.AllShapes() {
		shapes = append(shapes, s)
	}

	props.Property("layer state is well formed", prop.ForAll(func(seed uint64, shape domain.ShapeType, c int) bool {
		rnd := pcg(seed)
		var poly *domain.RandomPolygonSpec
		if shape == domain.ShapeRandom {
			p := NewRandomPolygon(rnd)
			poly = &p
		}
		st := BuildLayers(shape, poly, c, rnd)
		return st.ID != "" && st.Complexity == c && checkLayerState(st, domain.OutlineFor(shape, poly))
	}, gen.UInt64(), gen.OneConstOf(shapes...), gen.IntRange(MinComplexity, MaxComplexity)))

	props.TestingRun(t)
}

func TestPlaceRelaxesOnlyBelowMinimum(t *testing.T) {
	b := builder{rnd: pcg(3), outline: vector.CircleOutline(), complexity: 3}
	never := func(vector.Pt, []vector.Pt) float64 { return -1 }

	pts, relaxed := b.place(5, 2, never)
	assert.Len(t, pts, 2, "stops at the minimum once constraints cannot be met")
	assert.True(t, relaxed)

	pts, relaxed = b.place(5, 0, never)
	assert.Empty(t, pts)
	assert.False(t, relaxed)

	always := func(vector.Pt, []vector.Pt) float64 { return 0 }
	pts, relaxed = b.place(5, 2, always)
	assert.Len(t, pts, 5)
	assert.False(t, relaxed)
}
