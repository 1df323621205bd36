/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Command gosigil generates sigils and exports them as PNG, SVG, PDF or glow
// animation frames.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"gosigil/internal/config"
	"gosigil/internal/crash"
	applog "gosigil/internal/log"
	"gosigil/internal/sigil"
	"gosigil/internal/telemetry"
	"gosigil/internal/version"
)

// app carries what every subcommand needs after flags and config are resolved.
type app struct {
	cfg config.AppConfig
	log *slog.Logger
	out io.Writer

	// last is the most recent state, dumped next to a crash report.
	last *sigil.State

	configPath string
	logLevel   string
}

func main() {
	a := &app{out: os.Stdout}
	defer crash.Recover("", a.snapshot)

	err := a.rootCmd().Execute()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	telemetry.Flush(ctx)
	cancel()
	if err != nil {
		code := 1
		if errors.Is(err, config.ErrInvalidConfig) {
			code = 2
		}
		os.Exit(code)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gosigil",
		Short:         "Generate geometric sigils",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default: per-user config path, or $"+config.EnvConfigPath+")")
	pf.StringVar(&a.logLevel, "log-level", "", "override logging level (debug|info|warn|error)")

	root.AddCommand(
		a.generateCmd(),
		a.animateCmd(),
		a.renderCmd(),
		a.shapesCmd(),
		a.configCmd(),
		a.extractCmd(),
		a.versionCmd(),
	)
	return root
}

// setup loads config and initializes logging. Invalid config still leaves
// logging usable so the error can be reported.
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	lc := a.cfg.Logging
	if a.logLevel != "" {
		lc.Level = a.logLevel
	}
	applog.Init(applog.Options{Level: lc.Level, Format: lc.Format, AddSource: lc.Source, File: lc.File})
	a.log = applog.WithComponent("cli")
	telemetry.InitDefault()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.log.Debug("start", slog.String("version", version.String()), slog.String("shape", a.cfg.Sigil.Shape))
	return nil
}

func (a *app) snapshot() ([]byte, error) {
	if a.last == nil {
		return nil, errors.New("no sigil generated yet")
	}
	return sigil.MarshalState(*a.last)
}
