/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gosigil/internal/domain"
	"gosigil/internal/vector"
)

// ErrInvalidConfig marks a config file or override that fails to parse or
// validate.
var ErrInvalidConfig = errors.New("invalid config")

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int             `yaml:"config_version" json:"config_version"`
	Sigil         SigilConfig     `yaml:"sigil" json:"sigil"`
	Render        RenderConfig    `yaml:"render" json:"render"`
	Animation     AnimationConfig `yaml:"animation" json:"animation"`
	Export        ExportConfig    `yaml:"export" json:"export"`
	Logging       LoggingConfig   `yaml:"logging" json:"logging"`
}

// SigilConfig holds the generator inputs a host exposes to users.
type SigilConfig struct {
	Shape       string `yaml:"shape" json:"shape"`
	Background  string `yaml:"background" json:"background"`
	Color       string `yaml:"color" json:"color"`
	Complexity  int    `yaml:"complexity" json:"complexity"`
	Transparent bool   `yaml:"transparent" json:"transparent"`
}

// RenderConfig tunes proportions; zero keeps the renderer default.
type RenderConfig struct {
	RadiusFraction float64 `yaml:"radius_fraction" json:"radius_fraction"`
	OutlineWidth   float64 `yaml:"outline_width" json:"outline_width"`
	LineWidth      float64 `yaml:"line_width" json:"line_width"`
	GlowBlur       float64 `yaml:"glow_blur" json:"glow_blur"`
}

type AnimationConfig struct {
	DurationMs int `yaml:"duration_ms" json:"duration_ms"`
	FPS        int `yaml:"fps" json:"fps"`
}

// ExportConfig holds export defaults. Size 0 keeps the preset's size.
type ExportConfig struct {
	Size        int    `yaml:"size" json:"size"`
	Supersample int    `yaml:"supersample" json:"supersample"`
	Preset      string `yaml:"preset" json:"preset"`
	OutDir      string `yaml:"out_dir" json:"out_dir"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	Source bool   `yaml:"source" json:"source"`
	File   string `yaml:"file" json:"file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	app := domain.DefaultAppearance()
	return AppConfig{
		ConfigVersion: 1,
		Sigil: SigilConfig{
			Shape:      string(domain.ShapeHexagon),
			Background: app.Background.Hex(),
			Color:      app.Foreground.Hex(),
			Complexity: 3,
		},
		Animation: AnimationConfig{DurationMs: 800, FPS: 60},
		Export:    ExportConfig{Supersample: 2, Preset: "web"},
		Logging:   LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath  = "GSG_CONFIG"
	EnvShape       = "GSG_SHAPE"
	EnvBackground  = "GSG_BACKGROUND"
	EnvColor       = "GSG_COLOR"
	EnvComplexity  = "GSG_COMPLEXITY"
	EnvTransparent = "GSG_TRANSPARENT"
	EnvSize        = "GSG_SIZE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GSG_LOG_LEVEL"
	EnvLogFormat = "GSG_LOG_FORMAT"
	EnvLogSource = "GSG_LOG_SOURCE"
	EnvLogFile   = "GSG_LOG_FILE"
)

// ConfigPath returns the per-user config file path. GSG_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoSigil")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoSigil")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "gosigil")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present) over the defaults, merges
// environment overrides and validates the result.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Defaults(), err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file path. A missing file is not an error.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save validates cfg and writes it as YAML to the user config path.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

func SaveTo(path string, cfg AppConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// sigil
	if v := strings.TrimSpace(src.Sigil.Shape); v != "" {
		dst.Sigil.Shape = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Sigil.Background); v != "" {
		dst.Sigil.Background = v
	}
	if v := strings.TrimSpace(src.Sigil.Color); v != "" {
		dst.Sigil.Color = v
	}
	if src.Sigil.Complexity != 0 {
		dst.Sigil.Complexity = src.Sigil.Complexity
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.Sigil.Transparent = src.Sigil.Transparent
	// render
	if src.Render.RadiusFraction != 0 {
		dst.Render.RadiusFraction = src.Render.RadiusFraction
	}
	if src.Render.OutlineWidth != 0 {
		dst.Render.OutlineWidth = src.Render.OutlineWidth
	}
	if src.Render.LineWidth != 0 {
		dst.Render.LineWidth = src.Render.LineWidth
	}
	if src.Render.GlowBlur != 0 {
		dst.Render.GlowBlur = src.Render.GlowBlur
	}
	// animation
	if src.Animation.DurationMs != 0 {
		dst.Animation.DurationMs = src.Animation.DurationMs
	}
	if src.Animation.FPS != 0 {
		dst.Animation.FPS = src.Animation.FPS
	}
	// export
	if src.Export.Size != 0 {
		dst.Export.Size = src.Export.Size
	}
	if src.Export.Supersample != 0 {
		dst.Export.Supersample = src.Export.Supersample
	}
	if v := strings.TrimSpace(src.Export.Preset); v != "" {
		dst.Export.Preset = strings.ToLower(v)
	}
	if v := strings.TrimSpace(src.Export.OutDir); v != "" {
		dst.Export.OutDir = v
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) error {
	if v := strings.TrimSpace(os.Getenv(EnvShape)); v != "" {
		cfg.Sigil.Shape = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackground)); v != "" {
		cfg.Sigil.Background = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvColor)); v != "" {
		cfg.Sigil.Color = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvComplexity)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvComplexity, v)
		}
		cfg.Sigil.Complexity = n
	}
	if v := strings.TrimSpace(os.Getenv(EnvTransparent)); v != "" {
		cfg.Sigil.Transparent = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidConfig, EnvSize, v)
		}
		cfg.Export.Size = n
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = truthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
	return nil
}

func truthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	env := map[string]string{
		"sigil.shape":       EnvShape,
		"sigil.background":  EnvBackground,
		"sigil.color":       EnvColor,
		"sigil.complexity":  EnvComplexity,
		"sigil.transparent": EnvTransparent,
		"export.size":       EnvSize,
		"logging.level":     EnvLogLevel,
		"logging.format":    EnvLogFormat,
		"logging.source":    EnvLogSource,
		"logging.file":      EnvLogFile,
	}[key]
	if env != "" && os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}

// ShapeType parses the configured outer shape.
func (s SigilConfig) ShapeType() (domain.ShapeType, error) {
	return domain.ParseShapeType(s.Shape)
}

// Appearance parses the configured colors.
func (s SigilConfig) Appearance() (domain.Appearance, error) {
	bg, err := vector.ParseHex(s.Background)
	if err != nil {
		return domain.Appearance{}, fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	fg, err := vector.ParseHex(s.Color)
	if err != nil {
		return domain.Appearance{}, fmt.Errorf("%w: color: %v", ErrInvalidConfig, err)
	}
	return domain.Appearance{Background: bg, Foreground: fg}, nil
}

// Duration is the glow animation length.
func (a AnimationConfig) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}
