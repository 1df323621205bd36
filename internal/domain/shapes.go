/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"math"

	"gosigil/internal/vector"
)

// Star proportions shared by both star variants.
const (
	StarOuterRadius = 1.0
	StarInnerRadius = 0.50
	StarPoints      = 5
)

// FallbackShape stands in for "random" when no polygon has been generated yet.
const FallbackShape = ShapeHexagon

// OutlineFor resolves the unit-frame outline of shape. A random shape uses
// poly; without one it falls back to FallbackShape.
func OutlineFor(shape ShapeType, poly *RandomPolygonSpec) vector.Outline {
	switch shape {
	case ShapeCircle:
		return vector.CircleOutline()
	case ShapeSquare:
		return vector.Outline{Vertices: vector.RegularPolygon(4, -math.Pi/4)}
	case ShapeTriangle:
		return vector.Outline{Vertices: vector.RegularPolygon(3, -math.Pi/2)}
	case ShapeDiamond:
		return vector.Outline{Vertices: vector.RegularPolygon(4, -math.Pi/2)}
	case ShapePentagon:
		return vector.Outline{Vertices: vector.RegularPolygon(5, -math.Pi/2)}
	case ShapeHexagon:
		return vector.Outline{Vertices: vector.RegularPolygon(6, -math.Pi/2)}
	case ShapeOctagon:
		return vector.Outline{Vertices: vector.RegularPolygon(8, -math.Pi/8)}
	case ShapeStar:
		return vector.Outline{Vertices: vector.StarPolygon(StarOuterRadius, StarInnerRadius, StarPoints, -math.Pi/2)}
	case ShapeStarInverted:
		return vector.Outline{Vertices: vector.StarPolygon(StarOuterRadius, StarInnerRadius, StarPoints, math.Pi/2)}
	case ShapeRandom:
		if poly != nil && len(poly.Vertices) >= 3 {
			return vector.Outline{Vertices: poly.Points()}
		}
		return OutlineFor(FallbackShape, nil)
	default:
		return OutlineFor(FallbackShape, nil)
	}
}
