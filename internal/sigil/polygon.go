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

	"gosigil/internal/domain"
	"gosigil/internal/vector"
)

// polygonAttempts bounds the redraws of an angle set whose largest gap would
// leave the origin outside the polygon.
const polygonAttempts = 32

// NewRandomPolygon draws the vertex set of the "random" shape: 4–8 vertices at
// uniform angles with radius fractions in [0.55,1.0], sorted by angle.
//
// Angle sets with a gap of π or more are redrawn: the polygon is then
// star-shaped around the origin and connecting the sorted vertices in order
// can never cross itself.
func NewRandomPolygon(rnd vector.Rand) domain.RandomPolygonSpec {
	n := domain.MinPolygonVertices + intn(rnd, domain.MaxPolygonVertices-domain.MinPolygonVertices+1)
	var angles []float64
	for attempt := 0; attempt < polygonAttempts; attempt++ {
		angles = make([]float64, n)
		for i := range angles {
			angles[i] = vector.Uniform(rnd, 0, 2*math.Pi)
		}
		sort.Float64s(angles)
		if maxGap(angles) < math.Pi {
			break
		}
		angles = nil
	}
	if angles == nil {
		angles = spreadAngles(rnd, n)
	}
	spec := domain.RandomPolygonSpec{Vertices: make([]domain.PolygonVertex, n)}
	for i, a := range angles {
		spec.Vertices[i] = domain.PolygonVertex{
			Angle:  a,
			Radius: vector.Uniform(rnd, domain.MinPolygonRadius, domain.MaxPolygonRadius),
		}
	}
	return spec
}

// maxGap returns the largest circular gap between sorted angles.
func maxGap(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 2 * math.Pi
	}
	gap := sorted[0] + 2*math.Pi - sorted[len(sorted)-1]
	for i := 1; i < len(sorted); i++ {
		gap = math.Max(gap, sorted[i]-sorted[i-1])
	}
	return gap
}

// spreadAngles places n angles in equal sectors with a random offset inside
// each, which always keeps every gap below π for n >= 4.
func spreadAngles(rnd vector.Rand, n int) []float64 {
	sector := 2 * math.Pi / float64(n)
	out := make([]float64, n)
	for i := range out {
		out[i] = sector * (float64(i) + 0.25 + 0.5*rnd.Float64())
	}
	return out
}

// intn draws uniformly from [0,n).
func intn(rnd vector.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	v := int(rnd.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}
