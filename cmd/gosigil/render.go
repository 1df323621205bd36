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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gosigil/internal/bundle"
	"gosigil/internal/sigil"
	"gosigil/internal/vector"
)

// loadState reads a state saved with --dump-state, or the state inside a
// bundle written with --zip.
func loadState(path string) (sigil.State, error) {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		data, err = bundle.ReadState(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return sigil.State{}, fmt.Errorf("read state: %w", err)
	}
	return sigil.UnmarshalState(data)
}

func (a *app) renderCmd() *cobra.Command {
	var sf sigilFlags
	var of outputFlags
	var state string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Re-export a saved sigil state without generating a new one",
		Long: "Render reads a state written by `generate --dump-state` and exports it again.\n" +
			"--bg and --color recolor the saved sigil; its geometry is kept.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sf.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			st, err := loadState(state)
			if err != nil {
				return err
			}
			fs := cmd.Flags()
			if fs.Changed("bg") || fs.Changed("color") {
				bg, fg := st.Appearance.Background, st.Appearance.Foreground
				if fs.Changed("bg") {
					if bg, err = vector.ParseHex(sf.background); err != nil {
						return err
					}
				}
				if fs.Changed("color") {
					if fg, err = vector.ParseHex(sf.color); err != nil {
						return err
					}
				}
				st = st.WithColors(bg, fg)
			}
			if !st.Generated() {
				a.log.Warn("state has no layers; rendering the bare outline", "path", state)
			}
			a.last = &st
			return a.write(cmd, cfg, st, of)
		},
	}
	sf.bindAppearance(cmd)
	of.bind(cmd)
	cmd.Flags().StringVar(&state, "state", "", "state file written by generate --dump-state, or a bundle written with --zip")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}
