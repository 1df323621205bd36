/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "testing"

func TestPath_QuadAndCubic_Bounds(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.QuadTo(10, 10, 20, 0)
	p.CubicTo(30, -10, 40, 10, 50, 0)
	p.Close()

	b := p.Bounds()
	// With our approximation including control points, min/max should reflect extremes
	if b.X != 0 || b.Y != -10 || b.W != 50 || b.H != 20 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestPath_CircleBounds(t *testing.T) {
	var p Path
	p.AddCircle(10, 10, 5)
	b := p.Bounds()
	if b.X != 5 || b.Y != 5 || b.W != 10 || b.H != 10 {
		t.Fatalf("unexpected bounds: %+v", b)
	}
}

func TestPolygonPathClosed(t *testing.T) {
	p := Polygon([]Pt{{0, 0}, {1, 0}, {0, 1}})
	if len(p.Cmds) != 4 || p.Cmds[0].Op != MoveTo || p.Cmds[3].Op != Close {
		t.Fatalf("unexpected commands: %+v", p.Cmds)
	}
	empty := Polygon(nil)
	if !empty.Empty() {
		t.Fatalf("polygon of no points should be empty")
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#d4af37")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (Color{0xd4, 0xaf, 0x37, 255}) {
		t.Fatalf("unexpected color: %+v", c)
	}
	if c.Hex() != "#d4af37" {
		t.Fatalf("unexpected hex: %s", c.Hex())
	}
	if _, err := ParseHex("gold"); err == nil {
		t.Fatalf("expected error for non-hex input")
	}
	if b := c.Brighten(1); b.R < 250 || b.G < 250 || b.B < 250 {
		t.Fatalf("full brighten should approach white: %+v", b)
	}
}
