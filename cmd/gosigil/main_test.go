/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosigil/internal/config"
	"gosigil/internal/sigil"
)

// run executes the CLI with an isolated config and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfigPath, filepath.Join(t.TempDir(), "config.yaml"))
	for _, k := range []string{config.EnvShape, config.EnvBackground, config.EnvColor, config.EnvComplexity,
		config.EnvTransparent, config.EnvSize, config.EnvLogLevel, config.EnvLogFormat, config.EnvLogSource, config.EnvLogFile} {
		t.Setenv(k, "")
	}
	var out bytes.Buffer
	a := &app{out: &out}
	root := a.rootCmd()
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestGenerateWritesFormatsAndState(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.yaml")
	out, err := run(t, "generate", "--shape", "star", "--complexity", "4",
		"-f", "png,svg", "-o", dir, "--size", "64", "--dump-state", state)
	require.NoError(t, err)

	for _, p := range []string{filepath.Join(dir, "png", "sigil.png"), filepath.Join(dir, "svg", "sigil.svg")} {
		assert.FileExists(t, p)
		assert.Contains(t, out, p)
	}
	data, err := os.ReadFile(state)
	require.NoError(t, err)
	st, err := sigil.UnmarshalState(data)
	require.NoError(t, err)
	assert.Equal(t, "star", string(st.Shape))
	assert.Equal(t, 4, st.Complexity)
	assert.True(t, st.Generated())
}

func TestRenderReusesSavedState(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.yaml")
	_, err := run(t, "generate", "-f", "png", "-o", filepath.Join(dir, "a"), "--size", "32", "--dump-state", state)
	require.NoError(t, err)
	before, err := os.ReadFile(state)
	require.NoError(t, err)

	again := filepath.Join(dir, "again.yaml")
	_, err = run(t, "render", "--state", state, "-f", "png", "-o", filepath.Join(dir, "b"), "--size", "32", "--dump-state", again)
	require.NoError(t, err)
	after, err := os.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.FileExists(t, filepath.Join(dir, "b", "png", "sigil.png"))
}

func TestRenderRecolorKeepsLayers(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.yaml")
	_, err := run(t, "generate", "-f", "png", "-o", dir, "--size", "32", "--dump-state", state)
	require.NoError(t, err)

	out, err := run(t, "render", "--state", state, "--color", "#ff0000", "-f", "png", "-o", dir, "--size", "32", "--dump-state", "-")
	require.NoError(t, err)
	st, err := sigil.UnmarshalState([]byte(out[:strings.LastIndex(out, filepath.Join(dir, "png"))]))
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", st.Appearance.Foreground.Hex())

	data, err := os.ReadFile(state)
	require.NoError(t, err)
	orig, err := sigil.UnmarshalState(data)
	require.NoError(t, err)
	assert.Equal(t, orig.Layers, st.Layers)
}

func TestAnimateWritesFrames(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, "animate", "-o", dir, "--size", "32", "--fps", "20", "--duration", "200ms")
	require.NoError(t, err)
	lines := strings.Fields(out)
	require.Len(t, lines, 5)
	assert.Equal(t, filepath.Join(dir, "frame-004.png"), lines[4])
}

func TestShapesMarksConfiguredShape(t *testing.T) {
	out, err := run(t, "shapes")
	require.NoError(t, err)
	assert.Contains(t, out, "* hexagon\n")
	assert.Contains(t, out, "  random\n")
}

func TestInvalidFlagIsConfigError(t *testing.T) {
	_, err := run(t, "generate", "--complexity", "9", "-o", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestConfigShowAndInit(t *testing.T) {
	out, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "shape: hexagon")

	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	_, err = run(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.FileExists(t, path)
	_, err = run(t, "--config", path, "config", "init")
	assert.Error(t, err)
}

func TestZipBundleRendersAndExtracts(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "sigil.zip")
	_, err := run(t, "generate", "--shape", "random", "-f", "png,pdf", "-o", filepath.Join(dir, "out"), "--size", "32", "--zip", zipPath)
	require.NoError(t, err)
	require.FileExists(t, zipPath)

	_, err = run(t, "render", "--state", zipPath, "-f", "svg", "-o", filepath.Join(dir, "again"), "--size", "32")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "again", "svg", "sigil.svg"))

	out, err := run(t, "extract", zipPath, filepath.Join(dir, "x"))
	require.NoError(t, err)
	assert.Contains(t, out, "2 of 2 files extracted (random")
	assert.FileExists(t, filepath.Join(dir, "x", "pdf", "sigil.pdf"))
}

func TestRenderRejectsGeometryFlags(t *testing.T) {
	dir := t.TempDir()
	state := filepath.Join(dir, "state.yaml")
	_, err := run(t, "generate", "-f", "png", "-o", dir, "--size", "32", "--dump-state", state)
	require.NoError(t, err)

	for _, flag := range [][]string{{"--shape", "star"}, {"--complexity", "5"}} {
		args := append([]string{"render", "--state", state, "-f", "png", "-o", dir}, flag...)
		_, err := run(t, args...)
		assert.Error(t, err, flag[0])
	}
}
