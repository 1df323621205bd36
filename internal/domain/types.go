/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model of a sigil: the outer shape selector,
// the persisted random polygon, and the appearance. Layer payloads live in layers.go.

import (
	"errors"
	"fmt"
	"strings"

	"gosigil/internal/vector"
)

// ErrUnknownShape is returned by ParseShapeType for selectors outside the enum.
var ErrUnknownShape = errors.New("unknown shape")

// ShapeType selects the outer shape.
type ShapeType string

const (
	ShapeCircle       ShapeType = "circle"
	ShapeSquare       ShapeType = "square"
	ShapeTriangle     ShapeType = "triangle"
	ShapeDiamond      ShapeType = "diamond"
	ShapePentagon     ShapeType = "pentagon"
	ShapeHexagon      ShapeType = "hexagon"
	ShapeOctagon      ShapeType = "octagon"
	ShapeStar         ShapeType = "star"
	ShapeStarInverted ShapeType = "star-inverted"
	ShapeRandom       ShapeType = "random"
)

var allShapes = []ShapeType{
	ShapeCircle, ShapeSquare, ShapeTriangle, ShapeDiamond, ShapePentagon,
	ShapeHexagon, ShapeOctagon, ShapeStar, ShapeStarInverted, ShapeRandom,
}

// AllShapes lists every selectable outer shape in menu order.
func AllShapes() []ShapeType { return append([]ShapeType(nil), allShapes...) }

// RingShapes lists the shapes a concentric ring may take (everything but random).
func RingShapes() []ShapeType { return append([]ShapeType(nil), allShapes[:len(allShapes)-1]...) }

// ParseShapeType accepts the canonical names case-insensitively.
func ParseShapeType(s string) (ShapeType, error) {
	v := ShapeType(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range allShapes {
		if st == v {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// Valid reports whether s is one of the ten shapes.
func (s ShapeType) Valid() bool {
	_, err := ParseShapeType(string(s))
	return err == nil
}

// PolygonVertex is one entry of a random polygon: an angle in radians and a
// fraction of the render radius.
type PolygonVertex struct {
	Angle  float64 `json:"angle" yaml:"angle"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// Random polygon bounds.
const (
	MinPolygonVertices = 4
	MaxPolygonVertices = 8
	MinPolygonRadius   = 0.55
	MaxPolygonRadius   = 1.0
)

// RandomPolygonSpec is the persisted vertex set of the "random" shape, sorted by
// angle ascending so that connecting it in order never self-intersects.
// Vertices are resolved at render time, so the spec is resolution independent.
type RandomPolygonSpec struct {
	Vertices []PolygonVertex `json:"vertices" yaml:"vertices"`
}

// Points resolves the unit-frame vertices.
func (s RandomPolygonSpec) Points() []vector.Pt {
	pts := make([]vector.Pt, len(s.Vertices))
	for i, v := range s.Vertices {
		pts[i] = vector.Polar(v.Angle, v.Radius)
	}
	return pts
}

// Appearance holds the mutable colors. Changing it never invalidates layer state.
type Appearance struct {
	Background vector.Color `json:"background" yaml:"background"`
	Foreground vector.Color `json:"foreground" yaml:"foreground"`
}

// DefaultAppearance is a gold sigil on a near-black ground.
func DefaultAppearance() Appearance {
	return Appearance{
		Background: vector.Color{R: 0x0b, G: 0x0b, B: 0x12, A: 255},
		Foreground: vector.Color{R: 0xd4, G: 0xaf, B: 0x37, A: 255},
	}
}
