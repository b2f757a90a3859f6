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

package operator

import (
	"github.com/event4u-app/data-helpers/dataset"
)

// Distinct removes duplicate rows, keeping the first occurrence. Config true
// dedups by whole-row value; a string dedups by that field path, with one
// surviving row per distinct value (nil included). Surviving rows keep their
// original Index and Key. Any other config type leaves the rows unchanged.
func Distinct(rows dataset.Rows, config any) dataset.Rows {
	switch cfg := config.(type) {
	case bool:
		if !cfg {
			return rows
		}
		return distinctBy(rows, func(r dataset.Row) string {
			return canonical(r.Value)
		})
	case string:
		if cfg == "" {
			return rows
		}
		return distinctBy(rows, func(r dataset.Row) string {
			v, _ := r.Field(cfg)
			return canonical(v)
		})
	default:
		return rows
	}
}

func distinctBy(rows dataset.Rows, keyOf func(dataset.Row) string) dataset.Rows {
	seen := make(map[string]struct{}, len(rows))
	out := make(dataset.Rows, 0, len(rows))
	for _, row := range rows {
		key := keyOf(row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}
