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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	t.Run("simple dot path", func(t *testing.T) {
		p, err := ParsePath("user.profile.name")
		require.NoError(t, err)
		require.Len(t, p.Segments, 3)
		assert.Equal(t, SegmentField, p.Segments[0].Kind)
		assert.Equal(t, "user", p.Segments[0].Name)
		assert.False(t, p.HasWildcard())
	})

	t.Run("wildcard segments", func(t *testing.T) {
		p, err := ParsePath("orders.*.items.*.price")
		require.NoError(t, err)
		assert.Equal(t, 2, p.Wildcards())
		assert.Equal(t, SegmentWildcard, p.Segments[1].Kind)
	})

	t.Run("bracket index", func(t *testing.T) {
		p, err := ParsePath("items[0].name")
		require.NoError(t, err)
		require.Len(t, p.Segments, 3)
		assert.Equal(t, SegmentIndex, p.Segments[1].Kind)
		assert.Equal(t, 0, p.Segments[1].Index)
	})

	t.Run("quoted key", func(t *testing.T) {
		p, err := ParsePath("config['some key']")
		require.NoError(t, err)
		require.Len(t, p.Segments, 2)
		assert.Equal(t, SegmentKey, p.Segments[1].Kind)
		assert.Equal(t, "some key", p.Segments[1].Name)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := ParsePath("")
		assert.Error(t, err)

		_, err = ParsePath("items[0")
		assert.Error(t, err)

		_, err = ParsePath("items[foo]")
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{
			"name": "Alice",
			"tags": []any{"admin", "staff"},
		},
		"counts": map[int]any{3: "three"},
	}

	t.Run("nested map", func(t *testing.T) {
		v, ok := Get(data, "user.name")
		require.True(t, ok)
		assert.Equal(t, "Alice", v)
	})

	t.Run("numeric literal indexes sequences", func(t *testing.T) {
		v, ok := Get(data, "user.tags.1")
		require.True(t, ok)
		assert.Equal(t, "staff", v)
	})

	t.Run("bracket index", func(t *testing.T) {
		v, ok := Get(data, "user.tags[0]")
		require.True(t, ok)
		assert.Equal(t, "admin", v)
	})

	t.Run("negative index counts from end", func(t *testing.T) {
		v, ok := Get(data, "user.tags[-1]")
		require.True(t, ok)
		assert.Equal(t, "staff", v)
	})

	t.Run("int map key", func(t *testing.T) {
		v, ok := Get(data, "counts.3")
		require.True(t, ok)
		assert.Equal(t, "three", v)
	})

	t.Run("miss is not an error", func(t *testing.T) {
		v, ok := Get(data, "user.missing.deeper")
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("struct fields", func(t *testing.T) {
		type profile struct{ Name string }
		v, ok := Get(map[string]any{"p": profile{Name: "Bea"}}, "p.Name")
		require.True(t, ok)
		assert.Equal(t, "Bea", v)
	})
}

func TestGetDefault(t *testing.T) {
	data := map[string]any{"a": nil}
	assert.Equal(t, "fallback", GetDefault(data, "missing", "fallback"))
	assert.Equal(t, "fallback", GetDefault(data, "a", "fallback"))
	assert.Equal(t, 1, GetDefault(map[string]any{"a": 1}, "a", 99))
}

func TestResolve(t *testing.T) {
	data := map[string]any{
		"items": []any{
			map[string]any{"name": "a", "price": 1},
			map[string]any{"name": "b", "price": 2},
			map[string]any{"name": "c"},
		},
	}

	t.Run("single wildcard preserves element order", func(t *testing.T) {
		matches, err := Resolve(data, "items.*.name")
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, "a", matches[0].Value)
		assert.Equal(t, "b", matches[1].Value)
		assert.Equal(t, "c", matches[2].Value)
		assert.Equal(t, []any{1}, matches[1].Indexes)
	})

	t.Run("missing suffix drops the branch", func(t *testing.T) {
		matches, err := Resolve(data, "items.*.price")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, 1, matches[0].Value)
		assert.Equal(t, 2, matches[1].Value)
	})

	t.Run("rightmost wildcard varies fastest", func(t *testing.T) {
		nested := map[string]any{
			"groups": []any{
				map[string]any{"vals": []any{1, 2}},
				map[string]any{"vals": []any{3}},
			},
		}
		matches, err := Resolve(nested, "groups.*.vals.*")
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, []any{1, 2, 3}, []any{matches[0].Value, matches[1].Value, matches[2].Value})
		assert.Equal(t, []any{0, 0}, matches[0].Indexes)
		assert.Equal(t, []any{0, 1}, matches[1].Indexes)
		assert.Equal(t, []any{1, 0}, matches[2].Indexes)
	})

	t.Run("wildcard over map fans out in sorted key order", func(t *testing.T) {
		byName := map[string]any{
			"users": map[string]any{
				"bea":   map[string]any{"age": 30},
				"alice": map[string]any{"age": 20},
			},
		}
		matches, err := Resolve(byName, "users.*.age")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, []any{"alice"}, matches[0].Indexes)
		assert.Equal(t, []any{"bea"}, matches[1].Indexes)
	})

	t.Run("wildcard over non-collection yields nothing", func(t *testing.T) {
		matches, err := Resolve(map[string]any{"x": 5}, "x.*")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("no wildcard yields at most one match", func(t *testing.T) {
		matches, err := Resolve(data, "items.0.name")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "a", matches[0].Value)
	})
}

func TestSetDelete(t *testing.T) {
	t.Run("set creates intermediate maps", func(t *testing.T) {
		data := map[string]any{}
		require.NoError(t, Set(data, "user.profile.name", "Alice"))
		v, ok := Get(data, "user.profile.name")
		require.True(t, ok)
		assert.Equal(t, "Alice", v)
	})

	t.Run("set overwrites non-map intermediates", func(t *testing.T) {
		data := map[string]any{"user": "scalar"}
		require.NoError(t, Set(data, "user.name", "Bea"))
		v, _ := Get(data, "user.name")
		assert.Equal(t, "Bea", v)
	})

	t.Run("set rejects wildcard paths", func(t *testing.T) {
		assert.Error(t, Set(map[string]any{}, "items.*.name", 1))
	})

	t.Run("delete", func(t *testing.T) {
		data := map[string]any{"a": map[string]any{"b": 1, "c": 2}}
		assert.True(t, Delete(data, "a.b"))
		assert.False(t, Delete(data, "a.b"))
		_, ok := Get(data, "a.c")
		assert.True(t, ok)
	})
}

func TestFirstSegment(t *testing.T) {
	assert.Equal(t, "user", FirstSegment("user.profile.name"))
	assert.Equal(t, "data", FirstSegment("data[0].name"))
	assert.Equal(t, "flat", FirstSegment("flat"))
	assert.Equal(t, "", FirstSegment(""))
}
