/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gosigil/internal/config"
	"gosigil/internal/export"
	"gosigil/internal/render"
	"gosigil/internal/sigil"
)

// sigilFlags overlay the loaded config for one invocation. Only flags the
// user actually set win over config and environment.
type sigilFlags struct {
	shape       string
	background  string
	color       string
	complexity  int
	transparent bool
	size        int
	supersample int
}

func (f *sigilFlags) bind(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.shape, "shape", "", "outer shape (see `gosigil shapes`)")
	fs.IntVar(&f.complexity, "complexity", 0, "complexity 1-5")
	f.bindAppearance(cmd)
}

// bindAppearance binds the flags that leave a sigil's geometry alone. Commands
// working on a saved state take only these.
func (f *sigilFlags) bindAppearance(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.background, "bg", "", "background color, #rrggbb")
	fs.StringVar(&f.color, "color", "", "sigil color, #rrggbb")
	fs.BoolVar(&f.transparent, "transparent", false, "leave the background transparent")
	fs.IntVar(&f.size, "size", 0, "output size in pixels")
	fs.IntVar(&f.supersample, "supersample", 0, "oversampling of the raster embedded in svg/pdf (1-4)")
}

// apply merges set flags into cfg and revalidates it. Flags the command did
// not bind count as unset.
func (f *sigilFlags) apply(cmd *cobra.Command, cfg config.AppConfig) (config.AppConfig, error) {
	fs := cmd.Flags()
	if fs.Changed("shape") {
		cfg.Sigil.Shape = strings.ToLower(strings.TrimSpace(f.shape))
	}
	if fs.Changed("bg") {
		cfg.Sigil.Background = f.background
	}
	if fs.Changed("color") {
		cfg.Sigil.Color = f.color
	}
	if fs.Changed("complexity") {
		cfg.Sigil.Complexity = f.complexity
	}
	if fs.Changed("transparent") {
		cfg.Sigil.Transparent = f.transparent
	}
	if fs.Changed("size") {
		cfg.Export.Size = f.size
	}
	if fs.Changed("supersample") {
		cfg.Export.Supersample = f.supersample
	}
	if err := config.Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newState builds an ungenerated state from the effective config.
func newState(cfg config.AppConfig) (sigil.State, error) {
	shape, err := cfg.Sigil.ShapeType()
	if err != nil {
		return sigil.State{}, fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	app, err := cfg.Sigil.Appearance()
	if err != nil {
		return sigil.State{}, err
	}
	return sigil.NewState(shape, app, cfg.Sigil.Complexity), nil
}

func renderOptions(cfg config.AppConfig) render.Options {
	opt := render.DefaultOptions()
	if v := cfg.Render.RadiusFraction; v > 0 {
		opt.RadiusFraction = v
	}
	if v := cfg.Render.OutlineWidth; v > 0 {
		opt.OutlineWidth = v
	}
	if v := cfg.Render.LineWidth; v > 0 {
		opt.LineWidth = v
	}
	if v := cfg.Render.GlowBlur; v > 0 {
		opt.GlowBlur = v
	}
	return opt
}

func exportOptions(cfg config.AppConfig) export.Options {
	return export.Options{
		Width:       cfg.Export.Size,
		Height:      cfg.Export.Size,
		Transparent: cfg.Sigil.Transparent,
		Supersample: cfg.Export.Supersample,
		Render:      renderOptions(cfg),
	}
}
