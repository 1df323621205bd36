/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gosigil/internal/sigil"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb       PresetName = "web"
	PresetPrint     PresetName = "print"
	PresetAnimation PresetName = "animation"
)

// Formats understood by BatchExport.
const (
	FormatPNG    = "png"
	FormatSVG    = "svg"
	FormatPDF    = "pdf"
	FormatFrames = "frames"
)

// BatchOptions controls a multi-format export of one sigil.
//
// Outputs land in <OutDir>/<format>/<Name>.<ext>; frames go to
// <OutDir>/frames/<Name>-NNN.png. An empty OutDir uses the preset name
// relative to the working directory.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // empty means preset defaults
	Size    int      // when > 0 overrides the preset size
	OutDir  string
	Name    string // base file name, default "sigil"
	Export  Options

	// FPS and Duration drive the frames format; zero uses the animation defaults.
	FPS      int
	Duration time.Duration
}

// BatchExport writes f in every requested format and returns the paths.
func BatchExport(f sigil.Frame, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}

	base := opt.Dir()
	name := opt.Name
	if name == "" {
		name = "sigil"
	}

	eo := opt.Export
	eo.Width = PresetSize(opt.Preset)
	if opt.Size > 0 {
		eo.Width = opt.Size
	}
	eo.Height = eo.Width

	var out []string
	for _, raw := range formats {
		format := strings.ToLower(strings.TrimSpace(raw))
		path := filepath.Join(base, format, name+"."+format)
		var err error
		switch format {
		case FormatPNG:
			err = ExportPNG(path, f, eo)
		case FormatSVG:
			err = ExportSVG(path, f, eo)
		case FormatPDF:
			err = ExportPDF(path, f, eo)
		case FormatFrames:
			var paths []string
			paths, err = WriteFrames(filepath.Join(base, format), f, FrameOptions{Options: eo, FPS: opt.FPS, Duration: opt.Duration, Prefix: name})
			out = append(out, paths...)
			if err != nil {
				return out, fmt.Errorf("frames: %w", err)
			}
			continue
		default:
			return out, fmt.Errorf("unknown format: %s", raw)
		}
		if err != nil {
			return out, fmt.Errorf("%s: %w", format, err)
		}
		out = append(out, path)
	}
	return out, nil
}

// Dir is the directory BatchExport writes under.
func (o BatchOptions) Dir() string {
	switch {
	case o.OutDir != "":
		return o.OutDir
	case o.Preset != "":
		return string(o.Preset)
	default:
		return "exports"
	}
}

// Presets lists the known preset names.
func Presets() []PresetName { return []PresetName{PresetWeb, PresetPrint, PresetAnimation} }

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{FormatPNG, FormatSVG}
	case PresetPrint:
		return []string{FormatPDF, FormatPNG}
	case PresetAnimation:
		return []string{FormatFrames}
	default:
		return []string{FormatPNG}
	}
}

// PresetSize is the square output size a preset renders at.
func PresetSize(p PresetName) int {
	switch p {
	case PresetPrint:
		return 2048
	case PresetAnimation:
		return 512
	default:
		return DefaultSize
	}
}
