/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns a persisted sigil frame into drawing operations on a
// Surface. Every call is a full clear-and-redraw; nothing is cached between
// frames, which is what keeps redraw, export and animation identical.
package render

import "gosigil/internal/vector"

// Surface is the immediate-mode drawing target. Paths are in pixel space.
type Surface interface {
	// Size returns the drawable area in pixels.
	Size() (w, h int)
	// Clear fills the whole surface with c; a zero alpha clears to transparent.
	Clear(c vector.Color)
	Fill(p vector.Path, c vector.Color) error
	Stroke(p vector.Path, s vector.Stroke) error
	// Save pushes the clip region; Restore pops it.
	Save()
	Restore()
	// Clip intersects the current clip region with the interior of p.
	Clip(p vector.Path)
	// SetGlow makes subsequent fills and strokes cast a soft halo of color c
	// with the given blur radius in pixels. blur <= 0 turns the halo off.
	SetGlow(c vector.Color, blur float64)
}
