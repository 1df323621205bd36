/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes sigils to files: PNG rasters, hybrid SVG and PDF
// documents (native outline over an embedded inner-layer raster), glow
// animation frame sequences, and preset batches of those.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"gosigil/internal/render"
	"gosigil/internal/sigil"
)

const (
	DefaultSize        = 1024
	DefaultSupersample = 2
	maxSupersample     = 4
)

// Options controls a single export. Zero values take defaults.
type Options struct {
	Width, Height int
	Transparent   bool
	// Supersample is the oversampling factor for the raster embedded in SVG
	// and PDF output.
	Supersample int
	Render      render.Options
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultSize
	}
	if o.Height <= 0 {
		o.Height = o.Width
	}
	if o.Supersample <= 0 {
		o.Supersample = DefaultSupersample
	}
	if o.Supersample > maxSupersample {
		o.Supersample = maxSupersample
	}
	return o
}

// innerRaster renders only the clipped inner layers at Supersample× and
// scales the result down to the canvas size.
func innerRaster(r *render.Renderer, f sigil.Frame, opt Options) (image.Image, error) {
	ss := opt.Supersample
	s := render.NewGGSurface(opt.Width*ss, opt.Height*ss)
	defer s.Close()
	if err := r.Render(s, f, 0, render.Mode{InnerOnly: true}); err != nil {
		return nil, fmt.Errorf("render inner layers: %w", err)
	}
	if ss == 1 {
		return s.Image(), nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), s.Image(), s.Image().Bounds(), xdraw.Src, nil)
	return dst, nil
}

func innerPNG(r *render.Renderer, f sigil.Frame, opt Options) ([]byte, error) {
	img, err := innerRaster(r, f, opt)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode inner png: %w", err)
	}
	return buf.Bytes(), nil
}

// writeFile creates path (and its directory) and streams write into it.
func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}

// errWriter keeps the first write error for writers that discard them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
