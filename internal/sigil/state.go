/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sigil

import (
	"log/slog"
	"math/rand/v2"

	"gosigil/internal/domain"
	applog "gosigil/internal/log"
	"gosigil/internal/vector"
)

type ambientRand struct{}

func (ambientRand) Float64() float64 { return rand.Float64() }

// Ambient is the process-wide random source. It is not seedable; a generation
// is reproduced from its persisted state, never by replaying randomness.
func Ambient() vector.Rand { return ambientRand{} }

// State is everything one sigil needs: the mutable appearance and shape
// selector plus the persisted results of the last generation. It is a value
// owned by the caller; every operation returns a new State.
type State struct {
	Appearance domain.Appearance         `json:"appearance" yaml:"appearance"`
	Shape      domain.ShapeType          `json:"shape" yaml:"shape"`
	Complexity int                       `json:"complexity" yaml:"complexity"`
	Polygon    *domain.RandomPolygonSpec `json:"polygon,omitempty" yaml:"polygon,omitempty"`
	Layers     *domain.LayerState        `json:"layers,omitempty" yaml:"layers,omitempty"`
}

// NewState returns an ungenerated state.
func NewState(shape domain.ShapeType, appearance domain.Appearance, complexity int) State {
	return State{Appearance: appearance, Shape: shape, Complexity: ClampComplexity(complexity)}
}

// Generated reports whether a generation has run since the last shape change.
func (s State) Generated() bool { return s.Layers != nil }

// Generate runs a new generation. The random polygon is redrawn only for the
// random shape; any other shape keeps whatever polygon is stored.
func (s State) Generate(rnd vector.Rand) State {
	l := applog.WithOperation(applog.WithComponent("sigil"), "generate")
	if rnd == nil {
		rnd = Ambient()
	}
	s.Complexity = ClampComplexity(s.Complexity)
	if s.Shape == domain.ShapeRandom {
		poly := NewRandomPolygon(rnd)
		s.Polygon = &poly
	}
	layers := BuildLayers(s.Shape, s.Polygon, s.Complexity, rnd)
	s.Layers = &layers
	l.Debug("generated",
		slog.String("id", layers.ID),
		slog.String("shape", string(s.Shape)),
		slog.Int("complexity", s.Complexity),
		slog.Any("layers", layers.Kinds()))
	return s
}

// WithShape switches the outer shape and discards the persisted polygon and
// layers; the next Generate derives them again. Re-selecting the current shape
// is a no-op.
func (s State) WithShape(shape domain.ShapeType) State {
	if shape == s.Shape {
		return s
	}
	s.Shape = shape
	s.Polygon = nil
	s.Layers = nil
	return s
}

// WithColors changes the appearance only.
func (s State) WithColors(background, foreground vector.Color) State {
	s.Appearance = domain.Appearance{Background: background, Foreground: foreground}
	return s
}

// WithComplexity changes the complexity used by the next generation.
func (s State) WithComplexity(c int) State {
	s.Complexity = ClampComplexity(c)
	return s
}

// Frame is the immutable render input derived from a State.
type Frame struct {
	Shape      domain.ShapeType
	Polygon    *domain.RandomPolygonSpec
	Appearance domain.Appearance
	Layers     domain.LayerState
}

// Frame returns the render input. An ungenerated state renders the bare outline.
func (s State) Frame() Frame {
	f := Frame{Shape: s.Shape, Polygon: s.Polygon, Appearance: s.Appearance}
	if s.Layers != nil {
		f.Layers = *s.Layers
	}
	return f
}

// Outline resolves the frame's unit outline.
func (f Frame) Outline() vector.Outline { return domain.OutlineFor(f.Shape, f.Polygon) }
