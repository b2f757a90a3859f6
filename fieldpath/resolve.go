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

// Match is one result of a wildcard resolution. Indexes holds the concrete
// key/index substituted for each wildcard segment, left to right.
type Match struct {
	Indexes []any
	Value   any
}

// Resolve expands every wildcard segment of path against data and returns all
// matches in depth-first, left-to-right order: the rightmost wildcard varies
// fastest, matching nested-loop expansion. A path without wildcards yields at
// most one match. A wildcard over a non-collection node yields nothing for
// that branch.
func Resolve(data any, path string) ([]Match, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return ResolvePath(data, p), nil
}

// ResolvePath is Resolve for an already-parsed path.
func ResolvePath(data any, p *Path) []Match {
	var matches []Match
	resolveSegments(data, p.Segments, nil, &matches)
	return matches
}

func resolveSegments(data any, segments []Segment, indexes []any, out *[]Match) {
	if len(segments) == 0 {
		ix := make([]any, len(indexes))
		copy(ix, indexes)
		*out = append(*out, Match{Indexes: ix, Value: data})
		return
	}

	seg := segments[0]
	if seg.Kind == SegmentWildcard {
		for _, e := range collectionEntries(data) {
			resolveSegments(e.value, segments[1:], append(indexes, e.key), out)
		}
		return
	}

	val, found := step(data, seg)
	if !found {
		return
	}
	resolveSegments(val, segments[1:], indexes, out)
}
