/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"log/slog"

	applog "gosigil/internal/log"
	"gosigil/internal/render"
	"gosigil/internal/sigil"
)

// WritePNG renders f at glow 0 and encodes it as PNG. With Transparent the
// background stays at alpha 0.
func WritePNG(w io.Writer, f sigil.Frame, opt Options) error {
	opt = opt.withDefaults()
	s := render.NewGGSurface(opt.Width, opt.Height)
	defer s.Close()
	if err := render.New(opt.Render).Render(s, f, 0, render.Mode{Transparent: opt.Transparent}); err != nil {
		return fmt.Errorf("render png: %w", err)
	}
	if err := s.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ExportPNG writes f to path as PNG.
func ExportPNG(path string, f sigil.Frame, opt Options) error {
	applog.WithOperation(applog.WithComponent("export"), "png").Debug("export",
		slog.String("path", path), slog.Int("w", opt.Width), slog.Bool("transparent", opt.Transparent))
	return writeFile(path, func(w io.Writer) error { return WritePNG(w, f, opt) })
}
