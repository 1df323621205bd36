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
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"gosigil/internal/vector"
)

// ErrUnknownLayer is returned when decoding a layer kind this build does not know.
var ErrUnknownLayer = errors.New("unknown layer kind")

// LayerKind names one of the six inner patterns.
type LayerKind string

const (
	KindRadialLines          LayerKind = "radialLines"
	KindPerimeterConnections LayerKind = "perimeterConnections"
	KindConcentricShapes     LayerKind = "concentricShapes"
	KindScatterDots          LayerKind = "scatterDots"
	KindCrossLines           LayerKind = "crossLines"
	KindConnectedNodes       LayerKind = "connectedNodes"
)

// AllLayerKinds lists the six kinds in canonical order.
func AllLayerKinds() []LayerKind {
	return []LayerKind{
		KindRadialLines, KindPerimeterConnections, KindConcentricShapes,
		KindScatterDots, KindCrossLines, KindConnectedNodes,
	}
}

// Layer is a resolved layer payload. The set of implementations is closed;
// consumers switch on the concrete type.
type Layer interface {
	Kind() LayerKind
	layer()
}

// ConnectionStyle selects which point pairs are joined by a line.
type ConnectionStyle string

const (
	StyleSequential ConnectionStyle = "sequential"
	StyleSkip       ConnectionStyle = "skip-pattern"
	StyleAllPairs   ConnectionStyle = "all-pairs"
	StyleChain      ConnectionStyle = "chain"
	StyleStar       ConnectionStyle = "star"
)

// Edges returns the index pairs to connect for n points.
//
// sequential: consecutive points, closing the loop.
// skip-pattern: one closed pass with the smallest viable stride (2); with fewer
// than four points no stride is viable and the loop is sequential.
// chain: consecutive points, open.
// star: the first point to every other.
// all-pairs: every unordered pair.
func (s ConnectionStyle) Edges(n int) [][2]int {
	if n < 2 {
		return nil
	}
	var out [][2]int
	switch s {
	case StyleSequential:
		out = loopEdges(n, 1)
	case StyleSkip:
		if n/2 < 2 {
			return loopEdges(n, 1)
		}
		out = loopEdges(n, 2)
	case StyleChain:
		for i := 0; i+1 < n; i++ {
			out = append(out, [2]int{i, i + 1})
		}
	case StyleStar:
		for i := 1; i < n; i++ {
			out = append(out, [2]int{0, i})
		}
	default:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// loopEdges walks i, i+k, i+2k... from 0 until it returns to 0. For two points
// a closed loop degenerates to the single segment.
func loopEdges(n, k int) [][2]int {
	if n == 2 {
		return [][2]int{{0, 1}}
	}
	var out [][2]int
	cur := 0
	for {
		next := (cur + k) % n
		out = append(out, [2]int{cur, next})
		cur = next
		if cur == 0 {
			return out
		}
	}
}

// RadialLines are spokes from the center at the given angles.
type RadialLines struct {
	Angles []float64 `json:"angles" yaml:"angles"`
}

// PerimeterConnections joins points on the outline at arc-length fractions.
type PerimeterConnections struct {
	Positions []float64       `json:"positions" yaml:"positions"` // ascending, each in [0,1)
	Style     ConnectionStyle `json:"style" yaml:"style"`
}

// Ring is one scaled, rotated copy of a shape outline.
type Ring struct {
	Shape    ShapeType `json:"shape" yaml:"shape"`
	Scale    float64   `json:"scale" yaml:"scale"`
	Rotation float64   `json:"rotation" yaml:"rotation"`
}

// ConcentricShapes are rings sharing the sigil center.
type ConcentricShapes struct {
	Rings []Ring `json:"rings" yaml:"rings"`
}

// ScatterDots are filled disks at normalized points.
type ScatterDots struct {
	Points      []vector.Pt `json:"points" yaml:"points"`
	RadiusScale float64     `json:"radiusScale" yaml:"radiusScale"`
	Requested   int         `json:"requested" yaml:"requested"`
	Relaxed     bool        `json:"relaxed,omitempty" yaml:"relaxed,omitempty"`
}

// CrossLine is a full chord at Angle, shifted perpendicular to itself by
// Offset times the nominal radius.
type CrossLine struct {
	Angle  float64 `json:"angle" yaml:"angle"`
	Offset float64 `json:"offset" yaml:"offset"`
}

// CrossLines are chords through the shape.
type CrossLines struct {
	Lines []CrossLine `json:"lines" yaml:"lines"`
}

// ConnectedNodes are hollow rings joined by lines.
type ConnectedNodes struct {
	Nodes       []vector.Pt     `json:"nodes" yaml:"nodes"`
	Style       ConnectionStyle `json:"style" yaml:"style"`
	RadiusScale float64         `json:"radiusScale" yaml:"radiusScale"`
	Requested   int             `json:"requested" yaml:"requested"`
	Relaxed     bool            `json:"relaxed,omitempty" yaml:"relaxed,omitempty"`
}

func (RadialLines) Kind() LayerKind          { return KindRadialLines }
func (PerimeterConnections) Kind() LayerKind { return KindPerimeterConnections }
func (ConcentricShapes) Kind() LayerKind     { return KindConcentricShapes }
func (ScatterDots) Kind() LayerKind          { return KindScatterDots }
func (CrossLines) Kind() LayerKind           { return KindCrossLines }
func (ConnectedNodes) Kind() LayerKind       { return KindConnectedNodes }

func (RadialLines) layer()          {}
func (PerimeterConnections) layer() {}
func (ConcentricShapes) layer()     {}
func (ScatterDots) layer()          {}
func (CrossLines) layer()           {}
func (ConnectedNodes) layer()       {}

// Layer parameter ranges.
const (
	MinRadialLines         = 2
	MaxRadialLines         = 5
	MinPerimeterPoints     = 3
	MaxPerimeterPoints     = 5
	MinRings               = 1
	MaxRings               = 3
	MinRingScale           = 0.20
	MaxRingScale           = 0.65
	MaxRingRotation        = 0.2 * math.Pi
	MinScatterDots         = 2
	MaxScatterDots         = 5
	ScatterSeparation      = 0.15
	ScatterCenterExclusion = 0.12
	MinScatterRadiusScale  = 0.5
	MaxScatterRadiusScale  = 1.5
	MinCrossLines          = 1
	MaxCrossLines          = 3
	MaxCrossOffset         = 0.125
	MinNodes               = 2
	MaxNodes               = 5
	NodeSeparation         = 0.18
	MinNodeRadiusScale     = 0.6
	MaxNodeRadiusScale     = 1.4
)

// LayerState is the persisted result of one generation: 2–3 layers with every
// parameter resolved. It is never mutated after construction; redraw, export
// and each animation frame render from the same value.
type LayerState struct {
	ID         string  `json:"id" yaml:"id"`
	Complexity int     `json:"complexity" yaml:"complexity"`
	Layers     []Layer `json:"layers" yaml:"-"`
}

// Kinds returns the active layer kinds in draw order.
func (s LayerState) Kinds() []LayerKind {
	out := make([]LayerKind, len(s.Layers))
	for i, l := range s.Layers {
		out[i] = l.Kind()
	}
	return out
}

type layerDoc struct {
	Kind   LayerKind `yaml:"kind"`
	Params Layer     `yaml:"params"`
}

// MarshalYAML tags each layer with its kind.
func (s LayerState) MarshalYAML() (any, error) {
	docs := make([]layerDoc, len(s.Layers))
	for i, l := range s.Layers {
		docs[i] = layerDoc{Kind: l.Kind(), Params: l}
	}
	return struct {
		ID         string     `yaml:"id"`
		Complexity int        `yaml:"complexity"`
		Layers     []layerDoc `yaml:"layers"`
	}{s.ID, s.Complexity, docs}, nil
}

// UnmarshalYAML reads the form written by MarshalYAML.
func (s *LayerState) UnmarshalYAML(n *yaml.Node) error {
	var doc struct {
		ID         string `yaml:"id"`
		Complexity int    `yaml:"complexity"`
		Layers     []struct {
			Kind   LayerKind `yaml:"kind"`
			Params yaml.Node `yaml:"params"`
		} `yaml:"layers"`
	}
	if err := n.Decode(&doc); err != nil {
		return err
	}
	out := LayerState{ID: doc.ID, Complexity: doc.Complexity, Layers: make([]Layer, 0, len(doc.Layers))}
	for i := range doc.Layers {
		l, err := decodeLayer(doc.Layers[i].Kind, &doc.Layers[i].Params)
		if err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
		out.Layers = append(out.Layers, l)
	}
	*s = out
	return nil
}

func decodeLayer(k LayerKind, n *yaml.Node) (Layer, error) {
	switch k {
	case KindRadialLines:
		return decodeAs[RadialLines](n)
	case KindPerimeterConnections:
		return decodeAs[PerimeterConnections](n)
	case KindConcentricShapes:
		return decodeAs[ConcentricShapes](n)
	case KindScatterDots:
		return decodeAs[ScatterDots](n)
	case KindCrossLines:
		return decodeAs[CrossLines](n)
	case KindConnectedNodes:
		return decodeAs[ConnectedNodes](n)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLayer, k)
}

func decodeAs[T Layer](n *yaml.Node) (Layer, error) {
	var v T
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
