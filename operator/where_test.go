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
	"github.com/stretchr/testify/require"
)

func productRows() dataset.Rows {
	return dataset.FromValues([]any{
		map[string]any{"name": "Keyboard", "price": 49, "category": "electronics", "active": true},
		map[string]any{"name": "Mouse", "price": 19, "category": "electronics", "active": false},
		map[string]any{"name": "Desk", "price": 249, "category": "furniture", "active": true},
		map[string]any{"name": "Chair", "price": 89, "category": "furniture", "active": true},
	})
}

func names(rows dataset.Rows) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		v, _ := r.Field("name")
		out[i] = v.(string)
	}
	return out
}

func TestWhere(t *testing.T) {
	t.Run("literal value means equality", func(t *testing.T) {
		rows, err := Where(productRows(), map[string]any{"category": "furniture"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Desk", "Chair"}, names(rows))
	})

	t.Run("operator pair", func(t *testing.T) {
		rows, err := Where(productRows(), map[string]any{"price": []any{">", 50}})
		require.NoError(t, err)
		assert.Equal(t, []string{"Desk", "Chair"}, names(rows))
	})

	t.Run("multiple conditions AND together", func(t *testing.T) {
		rows, err := Where(productRows(), map[string]any{
			"category": "electronics",
			"price":    []any{"<", 30},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Mouse"}, names(rows))
	})

	t.Run("missing field compares as nil", func(t *testing.T) {
		rows, err := Where(productRows(), map[string]any{"missing": "x"})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("expression string config", func(t *testing.T) {
		rows, err := Where(productRows(), "price > 40 && active")
		require.NoError(t, err)
		assert.Equal(t, []string{"Keyboard", "Desk", "Chair"}, names(rows))
	})

	t.Run("invalid expression errors", func(t *testing.T) {
		_, err := Where(productRows(), "price >")
		assert.Error(t, err)
	})

	t.Run("unknown operator in pair errors", func(t *testing.T) {
		// "~>" is not an operator, so the pair reads as a literal equality
		// against the slice and simply matches nothing.
		rows, err := Where(productRows(), map[string]any{"price": []any{"~>", 50}})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("unusable config type is a no-op", func(t *testing.T) {
		rows, err := Where(productRows(), 42)
		require.NoError(t, err)
		assert.Len(t, rows, 4)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		rows, err := Where(dataset.Rows{}, map[string]any{"a": 1})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestLikeWhere(t *testing.T) {
	rows := dataset.FromValues([]any{
		map[string]any{"id": "sensor001"},
		map[string]any{"id": "SENSOR002"},
		map[string]any{"id": "pump003"},
		map[string]any{"id": 42},
	})

	t.Run("pattern string is case-insensitive by default", func(t *testing.T) {
		out, err := LikeWhere(rows, map[string]any{"id": "sensor%"})
		require.NoError(t, err)
		require.Len(t, out, 2)
	})

	t.Run("case_sensitive flag", func(t *testing.T) {
		out, err := LikeWhere(rows, map[string]any{
			"id": map[string]any{"pattern": "sensor%", "case_sensitive": true},
		})
		require.NoError(t, err)
		require.Len(t, out, 1)
		v, _ := out[0].Field("id")
		assert.Equal(t, "sensor001", v)
	})

	t.Run("non-string values are excluded, not an error", func(t *testing.T) {
		out, err := LikeWhere(rows, map[string]any{"id": "%"})
		require.NoError(t, err)
		assert.Len(t, out, 3)
	})

	t.Run("malformed condition errors", func(t *testing.T) {
		_, err := LikeWhere(rows, map[string]any{"id": 7})
		assert.Error(t, err)
	})
}
