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

package accessor

import (
	"github.com/event4u-app/data-helpers/fieldpath"
)

// Mutator writes into a nested map tree, creating intermediate levels as
// needed.
type Mutator struct {
	data map[string]any
}

// NewMutator wraps a map for writing. A nil map is replaced with an empty
// one.
func NewMutator(data map[string]any) *Mutator {
	if data == nil {
		data = make(map[string]any)
	}
	return &Mutator{data: data}
}

// Data returns the underlying map.
func (m *Mutator) Data() map[string]any { return m.data }

// Set writes value at path.
func (m *Mutator) Set(path string, value any) error {
	return fieldpath.Set(m.data, path, value)
}

// SetMany writes several path/value pairs. The first error aborts.
func (m *Mutator) SetMany(values map[string]any) error {
	for path, value := range values {
		if err := m.Set(path, value); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the value at path, reporting whether anything was removed.
func (m *Mutator) Delete(path string) bool {
	return fieldpath.Delete(m.data, path)
}

// Merge deep-merges src into the tree. Map values merge recursively; any
// other value overwrites.
func (m *Mutator) Merge(src map[string]any) {
	mergeMaps(m.data, src)
}

func mergeMaps(dst, src map[string]any) {
	for k, v := range src {
		if sv, ok := v.(map[string]any); ok {
			if dv, ok := dst[k].(map[string]any); ok {
				mergeMaps(dv, sv)
				continue
			}
		}
		dst[k] = v
	}
}
