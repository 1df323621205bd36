/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/jung-kurt/gofpdf"

	applog "gosigil/internal/log"
	"gosigil/internal/render"
	"gosigil/internal/sigil"
	"gosigil/internal/vector"
)

// WritePDF writes a single-page PDF with the same hybrid layout as WriteSVG.
// One canvas pixel maps to one point.
func WritePDF(w io.Writer, f sigil.Frame, opt Options) error {
	opt = opt.withDefaults()
	r := render.New(opt.Render)
	inner, err := innerPNG(r, f, opt)
	if err != nil {
		return err
	}

	pw, ph := float64(opt.Width), float64(opt.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetTitle(title(f), false)
	pdf.SetCreator("gosigil", false)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	if !opt.Transparent {
		setFillColor(pdf, f.Appearance.Background)
		pdf.Rect(0, 0, pw, ph, "F")
	}

	pdf.RegisterImageOptionsReader("inner", gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(inner))
	pdf.ImageOptions("inner", 0, 0, pw, ph, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	lay := r.LayoutFor(f, opt.Width, opt.Height)
	setDrawColor(pdf, f.Appearance.Foreground)
	pdf.SetLineWidth(math.Max(1, r.Options().OutlineWidth*lay.Radius))
	pdf.SetLineJoinStyle("round")
	pdf.SetLineCapStyle("round")
	if lay.Outline.Circle {
		pdf.Circle(lay.Center.X, lay.Center.Y, lay.Radius, "D")
	} else {
		pdf.Polygon(pdfPoints(lay.Vertices()), "D")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ExportPDF writes f to path as PDF.
func ExportPDF(path string, f sigil.Frame, opt Options) error {
	applog.WithOperation(applog.WithComponent("export"), "pdf").Debug("export",
		slog.String("path", path), slog.Int("w", opt.Width), slog.Bool("transparent", opt.Transparent))
	return writeFile(path, func(w io.Writer) error { return WritePDF(w, f, opt) })
}

func setFillColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setDrawColor(pdf *gofpdf.Fpdf, c vector.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func pdfPoints(pts []vector.Pt) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: p.X, Y: p.Y}
	}
	return out
}
