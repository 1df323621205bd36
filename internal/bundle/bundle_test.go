/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package bundle

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) []string {
	t.Helper()
	var paths []string
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		paths = append(paths, p)
	}
	return paths
}

func TestPackOpenAndExtract(t *testing.T) {
	root := t.TempDir()
	files := writeFiles(t, root, map[string]string{
		"png/sigil.png": "png-bytes",
		"svg/sigil.svg": "<svg/>",
	})
	zipPath := filepath.Join(t.TempDir(), "out", "sigil.zip")
	state := []byte("shape: star\n")
	if err := Pack(zipPath, root, files, state, Manifest{Generation: "g-1", Shape: "star"}); err != nil {
		t.Fatalf("pack: %v", err)
	}

	m, err := Open(zipPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if m.Generation != "g-1" || m.Shape != "star" || len(m.Files) != 2 || m.Created.IsZero() {
		t.Fatalf("unexpected manifest: %+v", m)
	}
	got, err := ReadState(zipPath)
	if err != nil || string(got) != string(state) {
		t.Fatalf("state = %q, %v", got, err)
	}

	dst := t.TempDir()
	n, err := Extract(zipPath, dst)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if n != 2 {
		t.Fatalf("extracted %d files, want 2", n)
	}
	if b, err := os.ReadFile(filepath.Join(dst, "svg", "sigil.svg")); err != nil || string(b) != "<svg/>" {
		t.Fatalf("svg = %q, %v", b, err)
	}
	if _, err := os.Stat(filepath.Join(dst, StateName)); !os.IsNotExist(err) {
		t.Fatalf("state must not be extracted")
	}

	// a second extract keeps what is there
	if n, err := Extract(zipPath, dst); err != nil || n != 0 {
		t.Fatalf("re-extract = %d, %v", n, err)
	}
}

func TestPackRejectsOutsideRootAndEmptyDest(t *testing.T) {
	root := t.TempDir()
	other := writeFiles(t, t.TempDir(), map[string]string{"x.png": "x"})
	if err := Pack(filepath.Join(root, "a.zip"), root, other, nil, Manifest{}); err == nil {
		t.Fatalf("expected error for a file outside root")
	}
	if err := Pack("", root, nil, nil, Manifest{}); err == nil {
		t.Fatalf("expected error on empty dest")
	}
}

func TestReadStateMissing(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "b.zip")
	if err := Pack(zipPath, t.TempDir(), nil, nil, Manifest{}); err != nil {
		t.Fatalf("pack: %v", err)
	}
	if _, err := ReadState(zipPath); !errors.Is(err, ErrNoState) {
		t.Fatalf("err = %v, want ErrNoState", err)
	}
}

func TestExtractSkipsUnsafeEntries(t *testing.T) {
	dir := t.TempDir()
	zpath := filepath.Join(dir, "evil.zip")
	f, err := os.Create(zpath)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range map[string]string{"../evil.txt": "bad", "png/ok.png": "ok"} {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("entry: %v", err)
		}
		_, _ = w.Write([]byte(body))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	_ = f.Close()

	dst := filepath.Join(dir, "dst")
	n, err := Extract(zpath, dst)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if n != 1 {
		t.Fatalf("extracted %d, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "evil.txt")); !os.IsNotExist(err) {
		t.Fatalf("zip slip entry was written")
	}
}

func TestPackFailureLeavesNoPartialZip(t *testing.T) {
	root := t.TempDir()
	files := writeFiles(t, root, map[string]string{"png/sigil.png": "png-bytes"})
	files = append(files, filepath.Join(root, "svg", "missing.svg"))
	zipPath := filepath.Join(t.TempDir(), "broken.zip")

	if err := Pack(zipPath, root, files, []byte("shape: star\n"), Manifest{}); err == nil {
		t.Fatalf("expected error for a missing file")
	}
	if _, err := os.Stat(zipPath); !os.IsNotExist(err) {
		t.Fatalf("partial zip left at %s: %v", zipPath, err)
	}
}
