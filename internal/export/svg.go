/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"math"

	svg "github.com/ajstarks/svgo"

	applog "gosigil/internal/log"
	"gosigil/internal/render"
	"gosigil/internal/sigil"
	"gosigil/internal/vector"
)

// WriteSVG writes a hybrid SVG: a background rect unless transparent, the
// inner layers as an embedded PNG, and the outline as a native circle or
// polygon on top.
func WriteSVG(w io.Writer, f sigil.Frame, opt Options) error {
	opt = opt.withDefaults()
	r := render.New(opt.Render)
	inner, err := innerPNG(r, f, opt)
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(opt.Width, opt.Height)
	canvas.Title(title(f))
	if !opt.Transparent {
		canvas.Rect(0, 0, opt.Width, opt.Height, fill(f.Appearance.Background))
	}
	canvas.Image(0, 0, opt.Width, opt.Height, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(inner))

	lay := r.LayoutFor(f, opt.Width, opt.Height)
	style := outlineStyle(f.Appearance.Foreground, math.Max(1, r.Options().OutlineWidth*lay.Radius))
	if lay.Outline.Circle {
		canvas.Circle(iround(lay.Center.X), iround(lay.Center.Y), iround(lay.Radius), style)
	} else {
		xs, ys := splitXY(lay.Vertices())
		canvas.Polygon(xs, ys, style)
	}
	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// ExportSVG writes f to path as SVG.
func ExportSVG(path string, f sigil.Frame, opt Options) error {
	applog.WithOperation(applog.WithComponent("export"), "svg").Debug("export",
		slog.String("path", path), slog.Int("w", opt.Width), slog.Bool("transparent", opt.Transparent))
	return writeFile(path, func(w io.Writer) error { return WriteSVG(w, f, opt) })
}

func title(f sigil.Frame) string {
	if f.Layers.ID == "" {
		return fmt.Sprintf("sigil (%s)", f.Shape)
	}
	return fmt.Sprintf("sigil %s (%s)", f.Layers.ID, f.Shape)
}

func fill(c vector.Color) string {
	s := "fill:" + c.Hex()
	if c.A < 255 {
		s += fmt.Sprintf(";fill-opacity:%.3f", float64(c.A)/255)
	}
	return s
}

func outlineStyle(c vector.Color, width float64) string {
	s := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f;stroke-linejoin:round;stroke-linecap:round", c.Hex(), width)
	if c.A < 255 {
		s += fmt.Sprintf(";stroke-opacity:%.3f", float64(c.A)/255)
	}
	return s
}

func splitXY(pts []vector.Pt) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = iround(p.X), iround(p.Y)
	}
	return xs, ys
}

func iround(v float64) int { return int(math.Round(v)) }
