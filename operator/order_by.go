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
	"fmt"
	"sort"
	"strings"

	"github.com/event4u-app/data-helpers/dataset"
	"github.com/spf13/cast"
)

type sortKey struct {
	path string
	desc bool
}

// OrderBy sorts rows by one or more field paths. Config forms:
//
//	"price"                          single key, ascending
//	"price DESC"                     single key with direction
//	[]any{"price DESC", "name"}      multiple keys, primary first
//	[]any{[]any{"price", "DESC"}}    explicit [path, direction] pairs
//	map[string]any{"price": "DESC"}  single-entry map
//
// Go maps are unordered, so a multi-entry map cannot express key priority
// and is rejected instead of silently picking one. The sort is stable: rows
// tied on every key keep their original relative order.
func OrderBy(rows dataset.Rows, config any) (dataset.Rows, error) {
	keys, err := parseSortKeys(config)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return rows, nil
	}

	out := make(dataset.Rows, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range keys {
			a, _ := out[i].Field(key.path)
			b, _ := out[j].Field(key.path)
			c := compareValues(a, b)
			if c == 0 {
				continue
			}
			if key.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out, nil
}

func parseSortKeys(config any) ([]sortKey, error) {
	switch cfg := config.(type) {
	case string:
		key, err := parseSortKey(cfg)
		if err != nil {
			return nil, err
		}
		return []sortKey{key}, nil

	case []any:
		keys := make([]sortKey, 0, len(cfg))
		for _, item := range cfg {
			switch it := item.(type) {
			case string:
				key, err := parseSortKey(it)
				if err != nil {
					return nil, err
				}
				keys = append(keys, key)
			case []any:
				if len(it) != 2 {
					return nil, fmt.Errorf("ORDER BY: pair must be [path, direction]")
				}
				path, ok1 := it[0].(string)
				dir, ok2 := it[1].(string)
				if !ok1 || !ok2 {
					return nil, fmt.Errorf("ORDER BY: pair must be [path, direction]")
				}
				desc, err := parseDirection(dir)
				if err != nil {
					return nil, err
				}
				keys = append(keys, sortKey{path: path, desc: desc})
			default:
				return nil, fmt.Errorf("ORDER BY: unsupported key type %T", item)
			}
		}
		return keys, nil

	case []string:
		keys := make([]sortKey, 0, len(cfg))
		for _, s := range cfg {
			key, err := parseSortKey(s)
			if err != nil {
				return nil, err
			}
			keys = append(keys, key)
		}
		return keys, nil

	case map[string]any:
		if len(cfg) > 1 {
			return nil, fmt.Errorf("ORDER BY: multi-key config must use the slice form, maps are unordered")
		}
		for path, dir := range cfg {
			desc, err := parseDirection(cast.ToString(dir))
			if err != nil {
				return nil, err
			}
			return []sortKey{{path: path, desc: desc}}, nil
		}
		return nil, nil

	default:
		return nil, nil
	}
}

// parseSortKey splits "price DESC" style strings.
func parseSortKey(s string) (sortKey, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		return sortKey{path: fields[0]}, nil
	case 2:
		desc, err := parseDirection(fields[1])
		if err != nil {
			return sortKey{}, err
		}
		return sortKey{path: fields[0], desc: desc}, nil
	default:
		return sortKey{}, fmt.Errorf("ORDER BY: cannot parse key %q", s)
	}
}

func parseDirection(dir string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case "", "ASC":
		return false, nil
	case "DESC":
		return true, nil
	default:
		return false, fmt.Errorf("ORDER BY: direction must be ASC or DESC, got %q", dir)
	}
}

// compareValues orders two field values: nil first, numbers numerically when
// both sides cast, strings lexically otherwise.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	af, aerr := cast.ToFloat64E(a)
	bf, berr := cast.ToFloat64E(b)
	if aerr == nil && berr == nil {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, bs := cast.ToString(a), cast.ToString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
