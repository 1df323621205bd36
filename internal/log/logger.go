/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log sets up the process-wide slog logger. Console output is a
// compact one-line format (or JSON), an optional file sink rotates through
// lumberjack, and records logged with a generation context carry its id.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"gosigil/internal/version"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "GSG_LOG_LEVEL"
	EnvFormat = "GSG_LOG_FORMAT"
	EnvSource = "GSG_LOG_SOURCE"
	EnvFile   = "GSG_LOG_FILE"
)

// Rotation limits of the file sink.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 28
)

// Options selects level, console format and sinks. The zero value logs INFO
// in console format to stderr.
type Options struct {
	Level     string // debug, info, warn or error
	Format    string // console or json
	AddSource bool
	File      string    // JSON log file, rotated; empty disables it
	Writer    io.Writer // console destination; nil means os.Stderr
}

var (
	mu     sync.RWMutex
	logger *slog.Logger
)

// L returns the process logger, configuring it from the environment on first use.
func L() *slog.Logger {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		Init(FromEnv())
		mu.RLock()
		l = logger
		mu.RUnlock()
	}
	return l
}

// Init replaces the process logger and slog's default.
func Init(opts Options) {
	l := slog.New(newHandler(opts)).With(
		slog.String("app", "gosigil"),
		slog.String("ver", version.Version),
	)
	mu.Lock()
	logger = l
	mu.Unlock()
	slog.SetDefault(l)
}

func newHandler(opts Options) slog.Handler {
	level := parseLevel(opts.Level)
	hopts := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	out := opts.Writer
	if out == nil {
		out = os.Stderr
	}
	var console slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		console = slog.NewJSONHandler(out, hopts)
	} else {
		console = newConsoleHandler(out, hopts)
	}

	sinks := []slog.Handler{console}
	if path := strings.TrimSpace(opts.File); path != "" {
		rot := &lj.Logger{
			Filename:   path,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
			Compress:   true,
		}
		sinks = append(sinks, slog.NewJSONHandler(rot, hopts))
	}
	return generationHandler{next: fanout(sinks)}
}

// FromEnv reads Options from the GSG_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv(EnvLevel, "info"),
		Format:    getenv(EnvFormat, "console"),
		AddSource: strings.EqualFold(getenv(EnvSource, "false"), "true"),
		File:      os.Getenv(EnvFile),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent tags records with the package or subsystem that logs them.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation tags records with the operation in progress.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

type genKey struct{}

// WithGeneration attaches a generation id; records logged with the returned
// context get a "gen" attribute.
func WithGeneration(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, genKey{}, id)
}

// Generation returns the id attached by WithGeneration.
func Generation(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(genKey{}).(string)
	return id, ok && id != ""
}
