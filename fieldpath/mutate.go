/*
 * Copyright 2026 The data-helpers Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fieldpath

// Set writes value at path inside data, creating intermediate maps for any
// missing level. Only field segments may appear in the path: index and
// wildcard segments cannot address positions that do not exist yet.
func Set(data map[string]any, path string, value any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}

	current := data
	for i := 0; i < len(p.Segments)-1; i++ {
		seg := p.Segments[i]
		if seg.Kind != SegmentField && seg.Kind != SegmentKey {
			return &PathError{Path: path, Message: "set supports only literal key segments"}
		}
		next, exists := current[seg.Name]
		nextMap, ok := next.(map[string]any)
		if !exists || !ok {
			nextMap = make(map[string]any)
			current[seg.Name] = nextMap
		}
		current = nextMap
	}

	last := p.Segments[len(p.Segments)-1]
	if last.Kind != SegmentField && last.Kind != SegmentKey {
		return &PathError{Path: path, Message: "set supports only literal key segments"}
	}
	current[last.Name] = value
	return nil
}

// Delete removes the value at path. It reports whether anything was removed;
// a miss anywhere along the path is not an error.
func Delete(data map[string]any, path string) bool {
	p, err := ParsePath(path)
	if err != nil {
		return false
	}

	current := data
	for i := 0; i < len(p.Segments)-1; i++ {
		seg := p.Segments[i]
		if seg.Kind != SegmentField && seg.Kind != SegmentKey {
			return false
		}
		next, exists := current[seg.Name]
		if !exists {
			return false
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return false
		}
		current = nextMap
	}

	last := p.Segments[len(p.Segments)-1]
	if last.Kind != SegmentField && last.Kind != SegmentKey {
		return false
	}
	if _, exists := current[last.Name]; !exists {
		return false
	}
	delete(current, last.Name)
	return true
}
