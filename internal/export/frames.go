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
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gosigil/internal/anim"
	applog "gosigil/internal/log"
	"gosigil/internal/render"
	"gosigil/internal/sigil"
)

// FrameOptions controls WriteFrames.
type FrameOptions struct {
	Options
	FPS      int
	Duration time.Duration
	// Prefix names the files <Prefix>-NNN.png; default "frame".
	Prefix string
}

// WriteFrames plays the glow animation for f on a virtual clock and writes
// every rendered step into dir, the settled glow=0 frame last. It returns the
// written paths in order.
func WriteFrames(dir string, f sigil.Frame, opt FrameOptions) ([]string, error) {
	base := opt.Options.withDefaults()
	prefix := opt.Prefix
	if prefix == "" {
		prefix = "frame"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}

	r := render.New(base.Render)
	s := render.NewGGSurface(base.Width, base.Height)
	defer s.Close()
	mode := render.Mode{Transparent: base.Transparent}

	var paths []string
	step := func(glow float64) error {
		if err := r.Render(s, f, glow, mode); err != nil {
			return fmt.Errorf("render frame %d: %w", len(paths), err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%03d.png", prefix, len(paths)))
		if err := writeFile(path, s.EncodePNG); err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	}

	loop := anim.NewFrameLoop(opt.FPS)
	a := anim.New(loop, step, anim.WithDuration(opt.Duration))
	a.Start()
	// The run ends on its own; the bound only guards a misconfigured clock.
	limit := int(a.Duration()/loop.Step()) + 2
	loop.Drain(limit)
	if err := a.Err(); err != nil {
		return paths, err
	}
	if a.Phase() != anim.Idle {
		a.Stop()
		return paths, fmt.Errorf("animation did not settle after %d frames", limit)
	}
	applog.WithOperation(applog.WithComponent("export"), "frames").Debug("export",
		slog.String("dir", dir), slog.Int("frames", len(paths)))
	return paths, nil
}
