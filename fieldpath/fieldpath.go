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

// Package fieldpath implements dot-notation path access over nested Go values.
//
// A path is a dot-separated sequence of segments. Each segment is a literal
// key ("user", "0"), a bracket index ("items[0]"), a quoted map key
// ("config['key']") or the wildcard marker ("*") which fans out across every
// element of the current collection.
//
// Supported formats:
//   - user.profile.name (nested fields)
//   - items.0.name / items[0].name (sequence index)
//   - config['key'] (quoted map key)
//   - orders.*.total (wildcard fan-out, see Resolve)
package fieldpath

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// SegmentKind discriminates the parsed path segment variants.
type SegmentKind int

const (
	// SegmentField is a literal key segment.
	SegmentField SegmentKind = iota
	// SegmentIndex is a numeric bracket segment such as [0] or [-1].
	SegmentIndex
	// SegmentKey is a quoted bracket segment such as ['key'].
	SegmentKey
	// SegmentWildcard is the * marker.
	SegmentWildcard
)

// Segment is a single component of a parsed path.
type Segment struct {
	Kind  SegmentKind
	Name  string // literal key or quoted key
	Index int    // bracket index when Kind is SegmentIndex
}

// Path is a parsed dot-notation path.
type Path struct {
	Raw      string
	Segments []Segment
}

// Wildcards returns the number of wildcard segments in the path.
func (p *Path) Wildcards() int {
	n := 0
	for _, s := range p.Segments {
		if s.Kind == SegmentWildcard {
			n++
		}
	}
	return n
}

// HasWildcard reports whether the path contains at least one wildcard segment.
func (p *Path) HasWildcard() bool {
	return p.Wildcards() > 0
}

// PathError reports a malformed path.
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("invalid field path %q: %s", e.Path, e.Message)
}

// ParsePath parses a dot-notation path into segments.
func ParsePath(path string) (*Path, error) {
	if path == "" {
		return nil, &PathError{Path: path, Message: "empty path"}
	}

	p := &Path{Raw: path}

	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		if !strings.Contains(part, "[") {
			if part == "*" {
				p.Segments = append(p.Segments, Segment{Kind: SegmentWildcard})
			} else {
				p.Segments = append(p.Segments, Segment{Kind: SegmentField, Name: part})
			}
			continue
		}
		if err := parseBracketPart(path, part, p); err != nil {
			return nil, err
		}
	}

	if len(p.Segments) == 0 {
		return nil, &PathError{Path: path, Message: "empty path"}
	}
	return p, nil
}

// parseBracketPart handles a part containing one or more [..] accessors,
// optionally preceded by a field name, e.g. items[0]['key'].
func parseBracketPart(path, part string, p *Path) error {
	open := strings.Index(part, "[")
	if open > 0 {
		name := part[:open]
		if name == "*" {
			p.Segments = append(p.Segments, Segment{Kind: SegmentWildcard})
		} else {
			p.Segments = append(p.Segments, Segment{Kind: SegmentField, Name: name})
		}
	}

	rest := part[open:]
	for len(rest) > 0 {
		if !strings.HasPrefix(rest, "[") {
			return &PathError{Path: path, Message: "unexpected characters after bracket"}
		}
		close := strings.Index(rest, "]")
		if close == -1 {
			return &PathError{Path: path, Message: "unmatched bracket"}
		}
		content := strings.TrimSpace(rest[1:close])
		seg, err := parseBracketContent(path, content)
		if err != nil {
			return err
		}
		p.Segments = append(p.Segments, seg)
		rest = rest[close+1:]
	}
	return nil
}

func parseBracketContent(path, content string) (Segment, error) {
	if content == "" {
		return Segment{}, &PathError{Path: path, Message: "empty bracket content"}
	}
	if content == "*" {
		return Segment{Kind: SegmentWildcard}, nil
	}
	if (strings.HasPrefix(content, "'") && strings.HasSuffix(content, "'") && len(content) >= 2) ||
		(strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) && len(content) >= 2) {
		return Segment{Kind: SegmentKey, Name: content[1 : len(content)-1]}, nil
	}
	if n, err := strconv.Atoi(content); err == nil {
		return Segment{Kind: SegmentIndex, Name: content, Index: n}, nil
	}
	return Segment{}, &PathError{Path: path, Message: "bracket content must be a number or quoted string"}
}

// Get resolves a wildcard-free path against data. A miss returns (nil, false),
// never an error: missing data is a lookup miss, not a failure.
func Get(data any, path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	return GetPath(data, p)
}

// GetPath resolves an already-parsed wildcard-free path.
func GetPath(data any, p *Path) (any, bool) {
	current := data
	for _, seg := range p.Segments {
		if seg.Kind == SegmentWildcard {
			return nil, false
		}
		val, found := step(current, seg)
		if !found {
			return nil, false
		}
		current = val
	}
	return current, true
}

// GetDefault resolves a path and substitutes def on a miss or nil value.
func GetDefault(data any, path string, def any) any {
	v, ok := Get(data, path)
	if !ok || v == nil {
		return def
	}
	return v
}

// step resolves one non-wildcard segment against a single node.
func step(data any, seg Segment) (any, bool) {
	if data == nil {
		return nil, false
	}

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch seg.Kind {
	case SegmentField:
		switch v.Kind() {
		case reflect.Map:
			if mv, ok := mapLookup(v, seg.Name); ok {
				return mv, true
			}
			return nil, false
		case reflect.Slice, reflect.Array:
			// A numeric literal segment addresses sequences too: "items.0".
			if n, err := strconv.Atoi(seg.Name); err == nil {
				return sliceLookup(v, n)
			}
			return nil, false
		case reflect.Struct:
			f := v.FieldByName(seg.Name)
			if f.IsValid() && f.CanInterface() {
				return f.Interface(), true
			}
			return nil, false
		default:
			return nil, false
		}

	case SegmentIndex:
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			return sliceLookup(v, seg.Index)
		case reflect.Map:
			return mapLookup(v, seg.Name)
		default:
			return nil, false
		}

	case SegmentKey:
		if v.Kind() != reflect.Map {
			return nil, false
		}
		return mapLookup(v, seg.Name)

	default:
		return nil, false
	}
}

// mapLookup tries the raw string key first, then its integer form.
func mapLookup(v reflect.Value, key string) (any, bool) {
	keyType := v.Type().Key()
	if keyType.Kind() == reflect.String || keyType.Kind() == reflect.Interface {
		mv := v.MapIndex(reflect.ValueOf(key))
		if mv.IsValid() {
			return mv.Interface(), true
		}
	}
	if n, err := strconv.Atoi(key); err == nil {
		if keyType.Kind() == reflect.Int || keyType.Kind() == reflect.Interface {
			mv := v.MapIndex(reflect.ValueOf(n))
			if mv.IsValid() {
				return mv.Interface(), true
			}
		}
	}
	return nil, false
}

func sliceLookup(v reflect.Value, index int) (any, bool) {
	length := v.Len()
	if index < 0 {
		index = length + index
	}
	if index < 0 || index >= length {
		return nil, false
	}
	return v.Index(index).Interface(), true
}

// collectionEntries lists the (key, value) pairs of a collection node in
// deterministic order: slices by position, maps by sorted key. Non-collection
// nodes yield nothing.
func collectionEntries(data any) []entry {
	if data == nil {
		return nil
	}
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		entries := make([]entry, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			entries = append(entries, entry{key: i, value: v.Index(i).Interface()})
		}
		return entries
	case reflect.Map:
		keys := v.MapKeys()
		entries := make([]entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, entry{key: k.Interface(), value: v.MapIndex(k).Interface()})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return fmt.Sprint(entries[i].key) < fmt.Sprint(entries[j].key)
		})
		return entries
	default:
		return nil
	}
}

type entry struct {
	key   any
	value any
}

// IsNested reports whether the path has more than a single flat key.
func IsNested(path string) bool {
	return strings.Contains(path, ".") || strings.Contains(path, "[")
}

// FirstSegment returns the leading literal segment of a path, e.g.
// "user.profile.name" yields "user".
func FirstSegment(path string) string {
	if path == "" {
		return ""
	}
	dot := strings.Index(path, ".")
	bracket := strings.Index(path, "[")
	cut := -1
	switch {
	case dot >= 0 && bracket >= 0:
		cut = dot
		if bracket < dot {
			cut = bracket
		}
	case dot >= 0:
		cut = dot
	case bracket >= 0:
		cut = bracket
	}
	if cut > 0 {
		return path[:cut]
	}
	return path
}
