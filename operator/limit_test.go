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

func fiveRows() dataset.Rows {
	return dataset.FromValues([]any{
		map[string]any{"name": "r1"},
		map[string]any{"name": "r2"},
		map[string]any{"name": "r3"},
		map[string]any{"name": "r4"},
		map[string]any{"name": "r5"},
	})
}

func TestOffsetLimit(t *testing.T) {
	t.Run("offset then limit picks the page", func(t *testing.T) {
		rows := Limit(Offset(fiveRows(), 2), 2)
		assert.Equal(t, []string{"r3", "r4"}, names(rows))
	})

	t.Run("offset boundaries", func(t *testing.T) {
		assert.Len(t, Offset(fiveRows(), 0), 5)
		assert.Len(t, Offset(fiveRows(), -3), 5)
		assert.Empty(t, Offset(fiveRows(), 5))
		assert.Empty(t, Offset(fiveRows(), 99))
	})

	t.Run("limit boundaries", func(t *testing.T) {
		assert.Empty(t, Limit(fiveRows(), 0))
		assert.Len(t, Limit(fiveRows(), -1), 5)
		assert.Len(t, Limit(fiveRows(), 3), 3)
		assert.Len(t, Limit(fiveRows(), 99), 5)
	})

	t.Run("numeric strings and floats coerce", func(t *testing.T) {
		assert.Len(t, Limit(fiveRows(), "2"), 2)
		assert.Len(t, Offset(fiveRows(), 4.0), 1)
	})

	t.Run("non-integer configs are treated as absent", func(t *testing.T) {
		assert.Len(t, Limit(fiveRows(), true), 5)
		assert.Len(t, Limit(fiveRows(), "lots"), 5)
		assert.Len(t, Offset(fiveRows(), nil), 5)
		assert.Len(t, Offset(fiveRows(), map[string]any{}), 5)
	})

	t.Run("empty input is absorbed", func(t *testing.T) {
		assert.Empty(t, Offset(dataset.Rows{}, 2))
		assert.Empty(t, Limit(dataset.Rows{}, 2))
	})
}

func TestPipeline(t *testing.T) {
	t.Run("fixed order filter sort paginate", func(t *testing.T) {
		rows, err := Pipeline(productRows(), map[string]any{
			"WHERE":    map[string]any{"price": []any{">", 20}},
			"ORDER BY": "price DESC",
			"OFFSET":   1,
			"LIMIT":    1,
		}, nil)
		require.NoError(t, err)
		// filtered: Keyboard, Desk, Chair; sorted: Desk, Chair, Keyboard;
		// page 2 of size 1: Chair
		assert.Equal(t, []string{"Chair"}, names(rows))
	})

	t.Run("operator keys are case-insensitive", func(t *testing.T) {
		rows, err := Pipeline(productRows(), map[string]any{
			"where":    map[string]any{"category": "furniture"},
			"order by": "price",
			"limit":    1,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chair"}, names(rows))
	})

	t.Run("duplicate operator keys are rejected", func(t *testing.T) {
		_, err := Pipeline(productRows(), map[string]any{
			"LIMIT": 1,
			"limit": 2,
		}, nil)
		assert.Error(t, err)
	})

	t.Run("group then paginate", func(t *testing.T) {
		rows, err := Pipeline(salesRows(), map[string]any{
			"GROUP BY": map[string]any{
				"field":        "category",
				"aggregations": map[string]any{"count": []any{"COUNT"}},
			},
			"LIMIT": 1,
		}, nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "electronics", rows[0].Value.(map[string]any)["category"])
	})

	t.Run("like runs in the filter stage", func(t *testing.T) {
		rows, err := Pipeline(productRows(), map[string]any{
			"LIKE":     map[string]any{"name": "%o%"},
			"ORDER BY": "name",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Keyboard", "Mouse"}, names(rows))
	})

	t.Run("pagination never affects filter or sort outcomes", func(t *testing.T) {
		base := map[string]any{
			"WHERE":    map[string]any{"price": []any{">", 20}},
			"ORDER BY": "price DESC",
		}
		full, err := Pipeline(productRows(), base, nil)
		require.NoError(t, err)

		paged, err := Pipeline(productRows(), map[string]any{
			"WHERE":    base["WHERE"],
			"ORDER BY": base["ORDER BY"],
			"OFFSET":   1,
			"LIMIT":    2,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, names(full)[1:3], names(paged))
	})
}
