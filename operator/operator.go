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

// Package operator implements the wildcard query operators applied to a row
// set before the per-row sub-template runs: WHERE (including LIKE), ORDER BY,
// GROUP BY with aggregations and HAVING, DISTINCT, OFFSET and LIMIT.
//
// Every operator is a pure function over dataset.Rows. Empty input yields
// empty output, and a config value of an unusable type leaves the rows
// unchanged; only genuinely invalid configuration (an unknown aggregation
// function, an unknown comparison operator) is an error.
package operator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/event4u-app/data-helpers/aggregator"
	"github.com/event4u-app/data-helpers/dataset"
)

// Operator template keys, matched case-insensitively. "ORDER BY" and
// "GROUP BY" also accept the underscore and condensed spellings.
const (
	KeyWhere    = "WHERE"
	KeyLike     = "LIKE"
	KeyOrderBy  = "ORDER BY"
	KeyGroupBy  = "GROUP BY"
	KeyDistinct = "DISTINCT"
	KeyOffset   = "OFFSET"
	KeyLimit    = "LIMIT"
)

// normalizeKey maps a template key to its canonical operator name, or ""
// when the key is not an operator.
func normalizeKey(key string) string {
	k := strings.ToUpper(strings.TrimSpace(key))
	k = strings.ReplaceAll(k, "_", " ")
	switch k {
	case KeyWhere, KeyLike, KeyOrderBy, KeyGroupBy, KeyDistinct, KeyOffset, KeyLimit:
		return k
	case "ORDERBY":
		return KeyOrderBy
	case "GROUPBY":
		return KeyGroupBy
	}
	return ""
}

// IsOperatorKey reports whether a template key names a pipeline operator.
func IsOperatorKey(key string) bool {
	return normalizeKey(key) != ""
}

// HasOperator reports whether a template node carries at least one operator
// key.
func HasOperator(node map[string]any) bool {
	for k := range node {
		if IsOperatorKey(k) {
			return true
		}
	}
	return false
}

// Pipeline runs every operator present in node over rows, in the fixed order
// WHERE, LIKE, ORDER BY, GROUP BY, DISTINCT, OFFSET, LIMIT. The order is
// load-bearing: pagination acts on the already filtered, sorted and grouped
// row set. GROUP BY aggregations resolve through aggs; nil means the default
// registry.
func Pipeline(rows dataset.Rows, node map[string]any, aggs *aggregator.Registry) (dataset.Rows, error) {
	configs := make(map[string]any, len(node))
	for k, v := range node {
		if op := normalizeKey(k); op != "" {
			if _, dup := configs[op]; dup {
				return nil, fmt.Errorf("duplicate operator key %s", op)
			}
			configs[op] = v
		}
	}

	var err error
	if cfg, ok := configs[KeyWhere]; ok {
		if rows, err = Where(rows, cfg); err != nil {
			return nil, err
		}
	}
	if cfg, ok := configs[KeyLike]; ok {
		if rows, err = LikeWhere(rows, cfg); err != nil {
			return nil, err
		}
	}
	if cfg, ok := configs[KeyOrderBy]; ok {
		if rows, err = OrderBy(rows, cfg); err != nil {
			return nil, err
		}
	}
	if cfg, ok := configs[KeyGroupBy]; ok {
		if rows, err = GroupBy(rows, cfg, aggs); err != nil {
			return nil, err
		}
	}
	if cfg, ok := configs[KeyDistinct]; ok {
		rows = Distinct(rows, cfg)
	}
	if cfg, ok := configs[KeyOffset]; ok {
		rows = Offset(rows, cfg)
	}
	if cfg, ok := configs[KeyLimit]; ok {
		rows = Limit(rows, cfg)
	}
	return rows, nil
}

// canonical renders a value as a deterministic key string: maps are encoded
// with sorted keys so two equal trees always encode identically. Used for
// DISTINCT dedup and GROUP BY composite keys. Nil gets a dedicated marker so
// a nil grouping key stays distinct from "" and "<nil>".
func canonical(v any) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v any) {
	switch val := v.(type) {
	case nil:
		b.WriteString("\x00nil\x00")
	case string:
		fmt.Fprintf(b, "s:%q", val)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString("m{")
		for _, k := range keys {
			fmt.Fprintf(b, "%q=", k)
			writeCanonical(b, val[k])
			b.WriteByte(';')
		}
		b.WriteString("}")
	case []any:
		b.WriteString("l[")
		for _, e := range val {
			writeCanonical(b, e)
			b.WriteByte(';')
		}
		b.WriteString("]")
	default:
		fmt.Fprintf(b, "%T:%v", val, val)
	}
}
