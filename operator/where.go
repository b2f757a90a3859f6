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

	"github.com/event4u-app/data-helpers/condition"
	"github.com/event4u-app/data-helpers/dataset"
)

// Where filters rows. The config is either a map from field path to a
// condition, or a free-form expression string compiled against the row value.
//
// Map conditions: a plain value means equality; a two-element [operator,
// value] pair applies that comparison ("==", "!=", ">", ">=", "<", "<=",
// "==="). All entries AND together. A path that does not resolve compares
// as nil.
func Where(rows dataset.Rows, config any) (dataset.Rows, error) {
	switch cfg := config.(type) {
	case map[string]any:
		return whereMap(rows, cfg)
	case string:
		return whereExpr(rows, cfg)
	default:
		return rows, nil
	}
}

func whereMap(rows dataset.Rows, config map[string]any) (dataset.Rows, error) {
	if len(config) == 0 {
		return rows, nil
	}

	out := make(dataset.Rows, 0, len(rows))
	for _, row := range rows {
		keep := true
		for path, cond := range config {
			val, _ := row.Field(path)
			op, expected := splitCondition(cond)
			match, err := condition.Compare(op, val, expected)
			if err != nil {
				return nil, fmt.Errorf("WHERE %s: %w", path, err)
			}
			if !match {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out, nil
}

func whereExpr(rows dataset.Rows, code string) (dataset.Rows, error) {
	cond, err := condition.NewExprCondition(code)
	if err != nil {
		return nil, fmt.Errorf("WHERE expression: %w", err)
	}

	out := make(dataset.Rows, 0, len(rows))
	for _, row := range rows {
		env, ok := row.Value.(map[string]any)
		if !ok {
			env = map[string]any{"value": row.Value, "key": row.Key}
		}
		if cond.Evaluate(env) {
			out = append(out, row)
		}
	}
	return out, nil
}

// splitCondition separates an [operator, value] pair from a plain equality
// value. A two-element slice whose first element is a known operator is a
// pair; everything else means equality.
func splitCondition(cond any) (op string, expected any) {
	if pair, ok := cond.([]any); ok && len(pair) == 2 {
		if s, ok := pair[0].(string); ok && isComparisonOp(s) {
			return s, pair[1]
		}
	}
	return "==", cond
}

func isComparisonOp(s string) bool {
	switch s {
	case "==", "=", "!=", "<>", "===", "!==", ">", ">=", "<", "<=":
		return true
	}
	return false
}

// LikeWhere filters rows by SQL-style patterns. The config maps a field path
// to a pattern string, or to {"pattern": ..., "case_sensitive": bool} for
// case-sensitive matching. Conditions AND together; rows whose value is not
// a string are excluded, never an error.
func LikeWhere(rows dataset.Rows, config any) (dataset.Rows, error) {
	cfg, ok := config.(map[string]any)
	if !ok || len(cfg) == 0 {
		return rows, nil
	}

	likes := make(map[string]*condition.Like, len(cfg))
	for path, raw := range cfg {
		pattern := ""
		caseSensitive := false
		switch c := raw.(type) {
		case string:
			pattern = c
		case map[string]any:
			p, ok := c["pattern"].(string)
			if !ok {
				return nil, fmt.Errorf("LIKE %s: pattern must be a string", path)
			}
			pattern = p
			if cs, ok := c["case_sensitive"].(bool); ok {
				caseSensitive = cs
			}
		default:
			return nil, fmt.Errorf("LIKE %s: unsupported condition type %T", path, raw)
		}

		like, err := condition.NewLike(pattern, caseSensitive)
		if err != nil {
			return nil, fmt.Errorf("LIKE %s: %w", path, err)
		}
		likes[path] = like
	}

	out := make(dataset.Rows, 0, len(rows))
	for _, row := range rows {
		keep := true
		for path, like := range likes {
			val, _ := row.Field(path)
			if !like.Match(val) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out, nil
}
