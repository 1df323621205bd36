/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import "gosigil/internal/vector"

// OpKind names a recorded surface call.
type OpKind string

const (
	OpClear   OpKind = "clear"
	OpFill    OpKind = "fill"
	OpStroke  OpKind = "stroke"
	OpSave    OpKind = "save"
	OpRestore OpKind = "restore"
	OpClip    OpKind = "clip"
	OpGlow    OpKind = "glow"
)

// Op is one recorded call. Fields not relevant to Kind are zero.
type Op struct {
	Kind   OpKind
	Path   vector.Path
	Color  vector.Color
	Stroke vector.Stroke
	Blur   float64
	// Depth is the Save nesting level when the op was issued.
	Depth int
}

// Recorder is a Surface that keeps every call instead of drawing. It backs
// tests and lets hosts replay a frame onto another surface.
type Recorder struct {
	W, H  int
	Ops   []Op
	depth int
}

func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Clear(c vector.Color) { r.add(Op{Kind: OpClear, Color: c}) }

func (r *Recorder) Fill(p vector.Path, c vector.Color) error {
	r.add(Op{Kind: OpFill, Path: p, Color: c})
	return nil
}

func (r *Recorder) Stroke(p vector.Path, s vector.Stroke) error {
	r.add(Op{Kind: OpStroke, Path: p, Stroke: s, Color: s.Color})
	return nil
}

func (r *Recorder) Save() {
	r.add(Op{Kind: OpSave})
	r.depth++
}

func (r *Recorder) Restore() {
	if r.depth > 0 {
		r.depth--
	}
	r.add(Op{Kind: OpRestore})
}

func (r *Recorder) Clip(p vector.Path) { r.add(Op{Kind: OpClip, Path: p}) }

func (r *Recorder) SetGlow(c vector.Color, blur float64) {
	r.add(Op{Kind: OpGlow, Color: c, Blur: blur})
}

func (r *Recorder) add(op Op) {
	op.Depth = r.depth
	r.Ops = append(r.Ops, op)
}

// Kinds lists the recorded op kinds in order.
func (r *Recorder) Kinds() []OpKind {
	out := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.Kind
	}
	return out
}

// Reset drops all recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.depth = 0
}

// Replay issues the recorded ops onto dst in order.
func (r *Recorder) Replay(dst Surface) error {
	for _, op := range r.Ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Color)
		case OpFill:
			if err := dst.Fill(op.Path, op.Color); err != nil {
				return err
			}
		case OpStroke:
			if err := dst.Stroke(op.Path, op.Stroke); err != nil {
				return err
			}
		case OpSave:
			dst.Save()
		case OpRestore:
			dst.Restore()
		case OpClip:
			dst.Clip(op.Path)
		case OpGlow:
			dst.SetGlow(op.Color, op.Blur)
		}
	}
	return nil
}
