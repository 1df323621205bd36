/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sigil

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"gosigil/internal/domain"
	"gosigil/internal/vector"
)

// MarshalState serializes s as YAML. The document is an export the user hands
// back to UnmarshalState; nothing reads it implicitly.
func MarshalState(s State) ([]byte, error) {
	return yaml.Marshal(s)
}

// UnmarshalState reads a state written by MarshalState and checks that it can
// be rendered as is.
func UnmarshalState(data []byte) (State, error) {
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("decode state: %w", err)
	}
	if _, err := domain.ParseShapeType(string(s.Shape)); err != nil {
		return State{}, err
	}
	s.Complexity = ClampComplexity(s.Complexity)
	if s.Polygon != nil {
		if n := len(s.Polygon.Vertices); n < 3 {
			return State{}, fmt.Errorf("decode state: polygon has %d vertices", n)
		}
		if !vector.Simple(s.Polygon.Points()) {
			return State{}, fmt.Errorf("decode state: polygon self-intersects")
		}
	}
	return s, nil
}
