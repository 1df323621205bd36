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
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gosigil/internal/domain"
	"gosigil/internal/vector"
)

func pcg(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

func properties(t *testing.T, n int) *gopter.Properties {
	t.Helper()
	p := gopter.DefaultTestParameters()
	p.MinSuccessfulTests = n
	return gopter.NewProperties(p)
}

func TestRandomPolygonProperties(t *testing.T) {
	props := properties(t, 500)

	props.Property("vertex count and radius bounds", prop.ForAll(func(seed uint64) bool {
		spec := NewRandomPolygon(pcg(seed))
		if n := len(spec.Vertices); n < domain.MinPolygonVertices || n > domain.MaxPolygonVertices {
			return false
		}
		for _, v := range spec.Vertices {
			if v.Radius < domain.MinPolygonRadius || v.Radius > domain.MaxPolygonRadius {
				return false
			}
			if v.Angle < 0 || v.Angle >= 2*math.Pi {
				return false
			}
		}
		return true
	}, gen.UInt64()))

	props.Property("angles strictly ascending", prop.ForAll(func(seed uint64) bool {
		spec := NewRandomPolygon(pcg(seed))
		for i := 1; i < len(spec.Vertices); i++ {
			if spec.Vertices[i].Angle <= spec.Vertices[i-1].Angle {
				return false
			}
		}
		return true
	}, gen.UInt64()))

	props.Property("closed path never self-intersects", prop.ForAll(func(seed uint64) bool {
		return vector.Simple(NewRandomPolygon(pcg(seed)).Points())
	}, gen.UInt64()))

	props.TestingRun(t)
}

// constRand always returns the same value, so every angle draw collapses
// onto one point and only the fallback can produce a valid polygon.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestRandomPolygonFallsBackToSpreadAngles(t *testing.T) {
	spec := NewRandomPolygon(constRand(0.3))
	if g := maxGap(anglesOf(spec)); g >= math.Pi {
		t.Fatalf("fallback gap %v >= π", g)
	}
	if !vector.Simple(spec.Points()) {
		t.Fatal("fallback polygon self-intersects")
	}
}

func anglesOf(spec domain.RandomPolygonSpec) []float64 {
	out := make([]float64, len(spec.Vertices))
	for i, v := range spec.Vertices {
		out[i] = v.Angle
	}
	return out
}

func TestIntnStaysInRange(t *testing.T) {
	for _, v := range []float64{0, 0.5, 0.999999999999} {
		if got := intn(constRand(v), 3); got < 0 || got > 2 {
			t.Fatalf("intn(%v) = %d", v, got)
		}
	}
	if intn(constRand(0.9), 1) != 0 {
		t.Fatal("intn(n=1) must be 0")
	}
}
