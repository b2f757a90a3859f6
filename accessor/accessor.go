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

// Package accessor provides typed dot-notation read and write access over
// nested data: the DataAccessor/DataMutator surface of the toolkit. All
// typed getters coerce via spf13/cast and report a miss with ok=false
// instead of an error.
package accessor

import (
	"github.com/event4u-app/data-helpers/fieldpath"
	"github.com/spf13/cast"
)

// Accessor reads from a nested tree.
type Accessor struct {
	data any
}

// New wraps a nested tree for reading.
func New(data any) *Accessor {
	return &Accessor{data: data}
}

// Data returns the wrapped tree.
func (a *Accessor) Data() any { return a.data }

// Get resolves a wildcard-free path. A miss is (nil, false).
func (a *Accessor) Get(path string) (any, bool) {
	return fieldpath.Get(a.data, path)
}

// GetDefault resolves a path, substituting def on a miss or nil value.
func (a *Accessor) GetDefault(path string, def any) any {
	return fieldpath.GetDefault(a.data, path, def)
}

// Values resolves a path that may contain wildcards and returns all matched
// values in resolution order.
func (a *Accessor) Values(path string) []any {
	matches, err := fieldpath.Resolve(a.data, path)
	if err != nil {
		return nil
	}
	out := make([]any, len(matches))
	for i, m := range matches {
		out[i] = m.Value
	}
	return out
}

// GetString resolves a path as a string.
func (a *Accessor) GetString(path string) (string, bool) {
	v, ok := a.Get(path)
	if !ok || v == nil {
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

// GetInt resolves a path as an int.
func (a *Accessor) GetInt(path string) (int, bool) {
	v, ok := a.Get(path)
	if !ok || v == nil {
		return 0, false
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GetFloat resolves a path as a float64.
func (a *Accessor) GetFloat(path string) (float64, bool) {
	v, ok := a.Get(path)
	if !ok || v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// GetBool resolves a path as a bool.
func (a *Accessor) GetBool(path string) (bool, bool) {
	v, ok := a.Get(path)
	if !ok || v == nil {
		return false, false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// GetStringSlice resolves a path as a []string.
func (a *Accessor) GetStringSlice(path string) ([]string, bool) {
	v, ok := a.Get(path)
	if !ok || v == nil {
		return nil, false
	}
	s, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, false
	}
	return s, true
}
