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

// Package dataset defines the row working set threaded through the wildcard
// operator pipeline.
package dataset

import (
	"github.com/event4u-app/data-helpers/fieldpath"
)

// Row is one wildcard match context: the element value reached by one
// combination of wildcard indices, together with its original position.
// Index is the position inside the initial expansion and stays stable through
// the pipeline so DISTINCT and stable sorting can refer back to source order.
type Row struct {
	Index int
	Key   any
	Value any
}

// Field resolves a dot-path relative to the row value. A miss returns
// (nil, false).
func (r Row) Field(path string) (any, bool) {
	if path == "" {
		return r.Value, true
	}
	return fieldpath.Get(r.Value, path)
}

// FieldDefault resolves a relative dot-path, substituting def on a miss.
func (r Row) FieldDefault(path string, def any) any {
	v, ok := r.Field(path)
	if !ok || v == nil {
		return def
	}
	return v
}

// Rows is an ordered working set for one wildcard expansion.
type Rows []Row

// Values returns the raw element values in row order.
func (rs Rows) Values() []any {
	out := make([]any, len(rs))
	for i, r := range rs {
		out[i] = r.Value
	}
	return out
}

// FromValues builds a row set from a plain slice, numbering rows by position.
func FromValues(values []any) Rows {
	rows := make(Rows, len(values))
	for i, v := range values {
		rows[i] = Row{Index: i, Key: i, Value: v}
	}
	return rows
}

// FromMatches builds a row set from wildcard resolution matches.
func FromMatches(matches []fieldpath.Match) Rows {
	rows := make(Rows, len(matches))
	for i, m := range matches {
		key := any(i)
		if len(m.Indexes) == 1 {
			key = m.Indexes[0]
		} else if len(m.Indexes) > 1 {
			ix := make([]any, len(m.Indexes))
			copy(ix, m.Indexes)
			key = ix
		}
		rows[i] = Row{Index: i, Key: key, Value: m.Value}
	}
	return rows
}
