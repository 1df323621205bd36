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
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gosigil/internal/bundle"
	"gosigil/internal/config"
	"gosigil/internal/export"
	applog "gosigil/internal/log"
	"gosigil/internal/sigil"
	"gosigil/internal/telemetry"
)

// outputFlags select where and how a sigil is written.
type outputFlags struct {
	formats   []string
	outDir    string
	name      string
	preset    string
	dumpState string
	zip       string
}

func (o *outputFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringSliceVarP(&o.formats, "format", "f", nil, "formats to write: png, svg, pdf, frames (default: preset formats)")
	fs.StringVarP(&o.outDir, "out", "o", "", "output directory (default: config export.out_dir, else the preset name)")
	fs.StringVar(&o.name, "name", "", "base file name (default: sigil)")
	fs.StringVar(&o.preset, "preset", "", "export preset: web, print, animation")
	fs.StringVar(&o.dumpState, "dump-state", "", "write the generated state as YAML to this file, - for stdout")
	fs.StringVar(&o.zip, "zip", "", "also pack the written files and the state into this zip")
}

func (a *app) generateCmd() *cobra.Command {
	var sf sigilFlags
	var of outputFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new sigil and export it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sf.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			st, err := newState(cfg)
			if err != nil {
				return err
			}
			st = st.Generate(sigil.Ambient())
			a.last = &st
			telemetry.Event(telemetry.EventGenerated, generatedProps(st))
			return a.write(cmd, cfg, st, of)
		},
	}
	sf.bind(cmd)
	of.bind(cmd)
	return cmd
}

// write exports st as of requests and dumps the state when asked.
func (a *app) write(cmd *cobra.Command, cfg config.AppConfig, st sigil.State, of outputFlags) error {
	ctx := applog.WithGeneration(context.Background(), st.Layers.ID)
	l := applog.WithOperation(a.log, "write")

	if of.dumpState != "" {
		if err := dumpState(cmd.OutOrStdout(), of.dumpState, st); err != nil {
			return err
		}
	}

	preset := export.PresetName(strings.ToLower(firstNonEmpty(of.preset, cfg.Export.Preset)))
	outDir := of.outDir
	if outDir == "" && cfg.Export.OutDir != "" {
		outDir = filepath.Join(cfg.Export.OutDir, string(preset))
	}
	bo := export.BatchOptions{
		Preset:   preset,
		Formats:  of.formats,
		Size:     cfg.Export.Size,
		OutDir:   outDir,
		Name:     of.name,
		Export:   exportOptions(cfg),
		FPS:      cfg.Animation.FPS,
		Duration: cfg.Animation.Duration(),
	}
	paths, err := export.BatchExport(st.Frame(), bo)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	if err != nil {
		l.ErrorContext(ctx, "export failed", slog.Any("err", err))
		return err
	}
	if of.zip != "" {
		if err := packBundle(of.zip, bo.Dir(), paths, st); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), of.zip)
	}
	telemetry.Event(telemetry.EventExported, map[string]any{
		"preset":  string(preset),
		"formats": of.formats,
		"files":   len(paths),
		"size":    cfg.Export.Size,
	})
	l.InfoContext(ctx, "sigil written",
		slog.String("shape", string(st.Shape)),
		slog.Any("layers", st.Layers.Kinds()),
		slog.Int("files", len(paths)))
	return nil
}

// generatedProps describes a generation without anything the user typed.
func generatedProps(st sigil.State) map[string]any {
	props := map[string]any{
		"shape":      string(st.Shape),
		"complexity": st.Complexity,
	}
	if st.Layers != nil {
		kinds := make([]string, 0, len(st.Layers.Layers))
		for _, k := range st.Layers.Kinds() {
			kinds = append(kinds, string(k))
		}
		props["layers"] = kinds
	}
	return props
}

func packBundle(dest, root string, paths []string, st sigil.State) error {
	state, err := sigil.MarshalState(st)
	if err != nil {
		return err
	}
	m := bundle.Manifest{Shape: string(st.Shape)}
	if st.Layers != nil {
		m.Generation = st.Layers.ID
	}
	return bundle.Pack(dest, root, paths, state, m)
}

func dumpState(stdout io.Writer, path string, st sigil.State) error {
	data, err := sigil.MarshalState(st)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dump state: %w", err)
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
