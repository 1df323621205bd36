/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func resetAfter(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { Init(Options{Level: "info", Writer: io.Discard}) })
}

func TestFileSinkWritesJSONWithContext(t *testing.T) {
	resetAfter(t)
	path := filepath.Join(t.TempDir(), "gosigil.log")
	Init(Options{Level: "debug", Format: "json", File: path, Writer: io.Discard})

	ctx := WithGeneration(context.Background(), "gen-1")
	WithOperation(WithComponent("export"), "png").InfoContext(ctx, "written", slog.String("path", "a.png"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &rec); err != nil {
		t.Fatalf("last line is not JSON: %v", err)
	}
	want := map[string]string{"app": "gosigil", "component": "export", "op": "png", "gen": "gen-1", "msg": "written", "path": "a.png"}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("%s = %v, want %q", k, rec[k], v)
		}
	}
	if _, ok := rec["ver"].(string); !ok {
		t.Errorf("missing ver attribute")
	}
}

func TestConsoleOutputRespectsLevel(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	Init(Options{Level: "warn", Writer: &buf})

	L().Info("quiet")
	L().Warn("loud", slog.Duration("took", 1500*time.Millisecond))
	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Fatalf("info logged at warn level: %q", out)
	}
	for _, want := range []string{"WRN loud", "took=1.5s", "app=gosigil"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "warn")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvSource, "TRUE")
	t.Setenv(EnvFile, "")

	opts := FromEnv()
	if opts.Level != "warn" || opts.Format != "json" || !opts.AddSource || opts.File != "" {
		t.Fatalf("FromEnv = %+v", opts)
	}
	if v := getenv("GSG_SURELY_UNSET_VAR", "fallback"); v != "fallback" {
		t.Fatalf("getenv fallback = %q", v)
	}
}

func TestGenerationFromContext(t *testing.T) {
	if _, ok := Generation(context.Background()); ok {
		t.Fatal("empty context must not carry a generation")
	}
	if _, ok := Generation(WithGeneration(context.Background(), "")); ok {
		t.Fatal("empty id must not count")
	}
	if id, ok := Generation(WithGeneration(context.Background(), "g")); !ok || id != "g" {
		t.Fatalf("Generation = %q, %v", id, ok)
	}
}
