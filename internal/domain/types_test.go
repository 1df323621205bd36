/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"gosigil/internal/vector"
)

func TestParseShapeType(t *testing.T) {
	got, err := ParseShapeType(" Star-Inverted ")
	require.NoError(t, err)
	assert.Equal(t, ShapeStarInverted, got)

	_, err = ParseShapeType("heptagon")
	if !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
	assert.Len(t, AllShapes(), 10)
	assert.NotContains(t, RingShapes(), ShapeRandom)
}

func TestOutlineVertexCounts(t *testing.T) {
	want := map[ShapeType]int{
		ShapeSquare: 4, ShapeTriangle: 3, ShapeDiamond: 4, ShapePentagon: 5,
		ShapeHexagon: 6, ShapeOctagon: 8, ShapeStar: 10, ShapeStarInverted: 10,
	}
	for shape, n := range want {
		o := OutlineFor(shape, nil)
		assert.False(t, o.Circle, shape)
		assert.Len(t, o.Vertices, n, shape)
	}
	assert.True(t, OutlineFor(ShapeCircle, nil).Circle)
}

func TestOutlineStartAngles(t *testing.T) {
	sq := OutlineFor(ShapeSquare, nil).Vertices[0]
	assert.InDelta(t, math.Cos(-math.Pi/4), sq.X, 1e-12)
	assert.InDelta(t, math.Sin(-math.Pi/4), sq.Y, 1e-12)

	star := OutlineFor(ShapeStar, nil).Vertices[0]
	inv := OutlineFor(ShapeStarInverted, nil).Vertices[0]
	assert.InDelta(t, -1, star.Y, 1e-12)
	assert.InDelta(t, 1, inv.Y, 1e-12)
}

func TestRandomWithoutSpecFallsBack(t *testing.T) {
	o := OutlineFor(ShapeRandom, nil)
	assert.Equal(t, OutlineFor(FallbackShape, nil), o)

	spec := &RandomPolygonSpec{Vertices: []PolygonVertex{{0, 1}, {2, 0.6}, {4, 0.8}, {5, 0.9}}}
	o = OutlineFor(ShapeRandom, spec)
	require.Len(t, o.Vertices, 4)
	assert.InDelta(t, 1, o.Vertices[0].X, 1e-12)
}

func TestConnectionStyleEdges(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}, StyleSequential.Edges(4))
	assert.Equal(t, [][2]int{{0, 2}, {2, 4}, {4, 1}, {1, 3}, {3, 0}}, StyleSkip.Edges(5))
	// three points have no viable stride
	assert.Equal(t, StyleSequential.Edges(3), StyleSkip.Edges(3))
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, StyleChain.Edges(3))
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}}, StyleStar.Edges(4))
	assert.Len(t, StyleAllPairs.Edges(5), 10)
	assert.Nil(t, StyleAllPairs.Edges(1))
}

func TestLayerStateYAMLCarriesKinds(t *testing.T) {
	st := LayerState{ID: "x", Complexity: 3, Layers: []Layer{
		RadialLines{Angles: []float64{1, 2}},
		ScatterDots{Points: []vector.Pt{{X: 0.2, Y: 0.3}}, RadiusScale: 1, Requested: 1},
	}}
	out, err := yaml.Marshal(st)
	require.NoError(t, err)
	assert.Contains(t, string(out), "kind: radialLines")
	assert.Contains(t, string(out), "kind: scatterDots")
	assert.Equal(t, []LayerKind{KindRadialLines, KindScatterDots}, st.Kinds())
}

func TestLayerStateYAMLRoundTrip(t *testing.T) {
	st := LayerState{ID: "y", Complexity: 4, Layers: []Layer{
		ConcentricShapes{Rings: []Ring{{Shape: ShapeStar, Scale: 0.4, Rotation: 0.1}}},
		ConnectedNodes{Nodes: []vector.Pt{{X: 0.1, Y: 0.9}, {X: 0.7, Y: 0.2}}, Style: StyleStar, RadiusScale: 1.2, Requested: 3, Relaxed: true},
		CrossLines{Lines: []CrossLine{{Angle: 1.5, Offset: -0.05}}},
	}}
	out, err := yaml.Marshal(st)
	require.NoError(t, err)

	var back LayerState
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, st, back)
}

func TestLayerStateYAMLRejectsUnknownKind(t *testing.T) {
	var st LayerState
	err := yaml.Unmarshal([]byte("id: z\nlayers:\n  - kind: spirals\n    params: {}\n"), &st)
	if !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
}
