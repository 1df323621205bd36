/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package bundle packs one sigil's exports and its state into a single zip
// and reads such archives back.
package bundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	applog "gosigil/internal/log"
	"gosigil/internal/version"
)

// Entry names at the archive root.
const (
	ManifestName = "bundle.yaml"
	StateName    = "state.yaml"
)

// ErrNoState is returned by ReadState for an archive without a state entry.
var ErrNoState = errors.New("bundle has no state")

// Manifest describes an archive. It is written first.
type Manifest struct {
	Generator  string    `yaml:"generator"`
	Created    time.Time `yaml:"created"`
	Generation string    `yaml:"generation,omitempty"`
	Shape      string    `yaml:"shape,omitempty"`
	Files      []string  `yaml:"files"`
}

// Pack writes dest containing every file under root listed in files, keyed
// by its slash-separated path relative to root, plus state (when non-empty)
// and a manifest. Files outside root are rejected.
func Pack(dest, root string, files []string, state []byte, m Manifest) error {
	l := applog.WithOperation(applog.WithComponent("bundle"), "pack").With(slog.String("zip", dest))
	if strings.TrimSpace(dest) == "" {
		return errors.New("dest is required")
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("%s is outside %s", f, root)
		}
		names = append(names, filepath.ToSlash(rel))
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("ensure zip dir: %w", err)
	}

	zf, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create zip: %w", err)
	}
	if err := writeArchive(zf, names, files, state, m); err != nil {
		_ = zf.Close()
		_ = os.Remove(dest)
		l.Error("zip build failed", slog.Any("err", err))
		return err
	}
	if err := zf.Close(); err != nil {
		_ = os.Remove(dest)
		return fmt.Errorf("close zip: %w", err)
	}
	l.Info("bundle written", slog.Int("files", len(files)))
	return nil
}

func writeArchive(w io.Writer, names, files []string, state []byte, m Manifest) error {
	zw := zip.NewWriter(w)

	m.Generator = "gosigil " + version.String()
	if m.Created.IsZero() {
		m.Created = time.Now().UTC().Truncate(time.Second)
	}
	m.Files = names
	doc, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := writeEntry(zw, ManifestName, doc); err != nil {
		return err
	}
	if len(state) > 0 {
		if err := writeEntry(zw, StateName, state); err != nil {
			return err
		}
	}
	for i, f := range files {
		if err := copyEntry(zw, names[i], f); err != nil {
			return fmt.Errorf("build zip: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish zip: %w", err)
	}
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("add %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func copyEntry(zw *zip.Writer, name, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

// Open reads the manifest of the archive at path.
func Open(zipPath string) (Manifest, error) {
	var m Manifest
	data, err := readEntry(zipPath, ManifestName)
	if err != nil {
		return m, err
	}
	if data == nil {
		return m, fmt.Errorf("%s: missing %s", zipPath, ManifestName)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}

// ReadState returns the state entry of the archive at path.
func ReadState(zipPath string) ([]byte, error) {
	data, err := readEntry(zipPath, StateName)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNoState
	}
	return data, nil
}

func readEntry(zipPath, name string) ([]byte, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer func() { _ = r.Close() }()
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// Extract unpacks the exported files (not manifest or state) into dir.
// Existing files are kept and not counted. Entries that would land outside
// dir are skipped.
func Extract(zipPath, dir string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("bundle"), "extract").With(slog.String("zip", zipPath))
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("open bundle: %w", err)
	}
	defer func() { _ = r.Close() }()

	installed := 0
	for _, f := range r.File {
		if f.Name == ManifestName || f.Name == StateName || f.FileInfo().IsDir() {
			continue
		}
		clean := path.Clean(f.Name)
		if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
			l.Warn("skip unsafe entry", slog.String("name", f.Name))
			continue
		}
		target := filepath.Join(dir, filepath.FromSlash(clean))
		if _, err := os.Stat(target); err == nil {
			l.Warn("skip existing file", slog.String("path", target))
			continue
		}
		if err := extractFile(f, target); err != nil {
			return installed, err
		}
		installed++
	}
	l.Info("bundle extracted", slog.Int("files", installed))
	return installed, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
