/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"gosigil/internal/export"
	applog "gosigil/internal/log"
	"gosigil/internal/sigil"
	"gosigil/internal/telemetry"
)

func (a *app) animateCmd() *cobra.Command {
	var sf sigilFlags
	var (
		outDir   string
		fps      int
		duration time.Duration
		state    string
	)
	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Generate a sigil and write its glow animation as PNG frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sf.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			var st sigil.State
			if state != "" && (cmd.Flags().Changed("shape") || cmd.Flags().Changed("complexity")) {
				return fmt.Errorf("--shape and --complexity cannot change a saved state")
			}
			if state != "" {
				if st, err = loadState(state); err != nil {
					return err
				}
			} else {
				if st, err = newState(cfg); err != nil {
					return err
				}
				st = st.Generate(sigil.Ambient())
				telemetry.Event(telemetry.EventGenerated, generatedProps(st))
			}
			a.last = &st

			if !cmd.Flags().Changed("fps") {
				fps = cfg.Animation.FPS
			}
			if !cmd.Flags().Changed("duration") {
				duration = cfg.Animation.Duration()
			}
			if outDir == "" {
				outDir = filepath.Join(firstNonEmpty(cfg.Export.OutDir, "exports"), "frames")
			}
			eo := exportOptions(cfg)
			if cfg.Export.Size == 0 {
				eo.Width = export.PresetSize(export.PresetAnimation)
				eo.Height = eo.Width
			}

			ctx := context.Background()
			if st.Layers != nil {
				ctx = applog.WithGeneration(ctx, st.Layers.ID)
			}
			paths, err := export.WriteFrames(outDir, st.Frame(), export.FrameOptions{
				Options:  eo,
				FPS:      fps,
				Duration: duration,
			})
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if err != nil {
				return err
			}
			telemetry.Event(telemetry.EventAnimated, map[string]any{"frames": len(paths), "fps": fps})
			applog.WithOperation(a.log, "animate").InfoContext(ctx, "frames written",
				slog.Int("frames", len(paths)),
				slog.Int("fps", fps),
				slog.Duration("duration", duration))
			return nil
		},
	}
	sf.bind(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&outDir, "out", "o", "", "frame directory (default: <export.out_dir>/frames)")
	fs.IntVar(&fps, "fps", 60, "frames per second")
	fs.DurationVar(&duration, "duration", 800*time.Millisecond, "glow duration")
	fs.StringVar(&state, "state", "", "animate a saved state instead of generating a new one")
	return cmd
}
