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
	"testing"

	"github.com/event4u-app/data-helpers/dataset"
	"github.com/stretchr/testify/assert"
)

func TestDistinct(t *testing.T) {
	rows := dataset.FromValues([]any{
		map[string]any{"name": "a", "group": 1},
		map[string]any{"name": "b", "group": 2},
		map[string]any{"name": "a", "group": 1},
		map[string]any{"name": "c", "group": 2},
	})

	t.Run("true dedups whole rows, first occurrence wins", func(t *testing.T) {
		out := Distinct(rows, true)
		assert.Equal(t, []string{"a", "b", "c"}, names(out))
		assert.Equal(t, []int{0, 1, 3}, indexes(out))
	})

	t.Run("field path dedups by that value", func(t *testing.T) {
		out := Distinct(rows, "group")
		assert.Equal(t, []string{"a", "b"}, names(out))
		assert.Equal(t, []int{0, 1}, indexes(out))
	})

	t.Run("idempotence", func(t *testing.T) {
		once := Distinct(rows, true)
		twice := Distinct(once, true)
		assert.Equal(t, once, twice)

		onceField := Distinct(rows, "group")
		twiceField := Distinct(onceField, "group")
		assert.Equal(t, onceField, twiceField)
	})

	t.Run("invalid config types pass rows through", func(t *testing.T) {
		assert.Equal(t, rows, Distinct(rows, 3))
		assert.Equal(t, rows, Distinct(rows, false))
		assert.Equal(t, rows, Distinct(rows, nil))
		assert.Equal(t, rows, Distinct(rows, ""))
	})

	t.Run("nil field values are one distinct bucket", func(t *testing.T) {
		mixed := dataset.FromValues([]any{
			map[string]any{"name": "a"},
			map[string]any{"name": "b", "group": nil},
			map[string]any{"name": "c", "group": 1},
		})
		out := Distinct(mixed, "group")
		assert.Equal(t, []string{"a", "c"}, names(out))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Distinct(dataset.Rows{}, true))
	})
}

func indexes(rows dataset.Rows) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}
