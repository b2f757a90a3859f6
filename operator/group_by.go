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
	"strings"

	"github.com/event4u-app/data-helpers/aggregator"
	"github.com/event4u-app/data-helpers/condition"
	"github.com/event4u-app/data-helpers/dataset"
	"github.com/event4u-app/data-helpers/fieldpath"
)

// groupSpec is the parsed GROUP BY configuration.
type groupSpec struct {
	fields       []string
	aggregations []aggregationSpec
	having       map[string]any
}

type aggregationSpec struct {
	alias string
	fn    aggregator.AggregateType
	path  string
	arg   any
}

// GroupBy groups rows by one or more field paths and replaces them with one
// synthetic row per distinct key, in order of first occurrence. Config keys
// (matched case-insensitively):
//
//	field / fields   grouping path, or a list of paths for composite keys
//	aggregations     map from output alias to [FUNC, path?, extraArg?]
//	having           post-aggregation filter over aliases, WHERE-style
//
// Without field/fields the operator is a no-op, aggregations alone included.
// A nil key value is a valid, distinct group. Unknown aggregation functions
// are a configuration error that aborts the pipeline. Aggregation functions
// resolve through aggs; nil falls back to the default registry.
func GroupBy(rows dataset.Rows, config any, aggs *aggregator.Registry) (dataset.Rows, error) {
	cfg, ok := config.(map[string]any)
	if !ok {
		return rows, nil
	}
	if aggs == nil {
		aggs = aggregator.DefaultRegistry()
	}

	spec, err := parseGroupSpec(cfg)
	if err != nil {
		return nil, err
	}
	if len(spec.fields) == 0 {
		return rows, nil
	}

	// Validate every aggregation up front so an unknown function fails even
	// on empty input.
	for _, agg := range spec.aggregations {
		if _, err := aggs.Create(agg.fn, agg.arg); err != nil {
			return nil, fmt.Errorf("GROUP BY %s: %w", agg.alias, err)
		}
	}

	type group struct {
		keyValues []any
		aggs      map[string]aggregator.AggregatorFunction
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, row := range rows {
		keyValues := make([]any, len(spec.fields))
		var key strings.Builder
		for i, field := range spec.fields {
			v, _ := row.Field(field)
			keyValues[i] = v
			key.WriteString(canonical(v))
			key.WriteByte('\x1f')
		}

		g, exists := groups[key.String()]
		if !exists {
			g = &group{
				keyValues: keyValues,
				aggs:      make(map[string]aggregator.AggregatorFunction, len(spec.aggregations)),
			}
			for _, agg := range spec.aggregations {
				fn, err := aggs.Create(agg.fn, agg.arg)
				if err != nil {
					return nil, fmt.Errorf("GROUP BY %s: %w", agg.alias, err)
				}
				g.aggs[agg.alias] = fn
			}
			groups[key.String()] = g
			order = append(order, key.String())
		}

		for _, agg := range spec.aggregations {
			if agg.path == "" {
				// count-style: every row contributes one unit
				g.aggs[agg.alias].Add(1)
				continue
			}
			v, _ := row.Field(agg.path)
			g.aggs[agg.alias].Add(v)
		}
	}

	out := make(dataset.Rows, 0, len(order))
	for i, key := range order {
		g := groups[key]
		value := make(map[string]any, len(spec.fields)+len(spec.aggregations))
		for j, field := range spec.fields {
			// A dotted grouping field is written back nested so the group row
			// answers the same path lookup the rows were grouped by.
			if err := fieldpath.Set(value, field, g.keyValues[j]); err != nil {
				value[field] = g.keyValues[j]
			}
		}
		for _, agg := range spec.aggregations {
			value[agg.alias] = g.aggs[agg.alias].Result()
		}

		keep, err := matchesHaving(value, spec.having)
		if err != nil {
			return nil, err
		}
		if !keep {
			continue
		}
		out = append(out, dataset.Row{Index: i, Key: i, Value: value})
	}
	return out, nil
}

func parseGroupSpec(cfg map[string]any) (*groupSpec, error) {
	spec := &groupSpec{}

	for k, v := range cfg {
		switch strings.ToLower(strings.TrimSpace(k)) {
		case "field", "fields":
			fields, err := parseGroupFields(v)
			if err != nil {
				return nil, err
			}
			spec.fields = append(spec.fields, fields...)
		case "aggregations":
			aggs, err := parseAggregations(v)
			if err != nil {
				return nil, err
			}
			spec.aggregations = aggs
		case "having":
			having, ok := v.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("GROUP BY: HAVING must be a map, got %T", v)
			}
			spec.having = having
		default:
			return nil, fmt.Errorf("GROUP BY: unknown config key %q", k)
		}
	}
	return spec, nil
}

func parseGroupFields(v any) ([]string, error) {
	switch f := v.(type) {
	case string:
		return []string{f}, nil
	case []string:
		return f, nil
	case []any:
		fields := make([]string, 0, len(f))
		for _, item := range f {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("GROUP BY: field must be a string, got %T", item)
			}
			fields = append(fields, s)
		}
		return fields, nil
	default:
		return nil, fmt.Errorf("GROUP BY: field must be a string or list of strings, got %T", v)
	}
}

func parseAggregations(v any) ([]aggregationSpec, error) {
	cfg, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("GROUP BY: aggregations must be a map, got %T", v)
	}

	aggs := make([]aggregationSpec, 0, len(cfg))
	for alias, raw := range cfg {
		spec := aggregationSpec{alias: alias}
		switch a := raw.(type) {
		case string:
			spec.fn = aggregator.AggregateType(a)
		case []any:
			if len(a) == 0 {
				return nil, fmt.Errorf("GROUP BY %s: empty aggregation", alias)
			}
			fn, ok := a[0].(string)
			if !ok {
				return nil, fmt.Errorf("GROUP BY %s: function name must be a string", alias)
			}
			spec.fn = aggregator.AggregateType(fn)
			if len(a) > 1 {
				path, ok := a[1].(string)
				if !ok {
					return nil, fmt.Errorf("GROUP BY %s: field path must be a string", alias)
				}
				spec.path = path
			}
			if len(a) > 2 {
				spec.arg = a[2]
			}
		case []string:
			if len(a) == 0 {
				return nil, fmt.Errorf("GROUP BY %s: empty aggregation", alias)
			}
			spec.fn = aggregator.AggregateType(a[0])
			if len(a) > 1 {
				spec.path = a[1]
			}
			if len(a) > 2 {
				spec.arg = a[2]
			}
		default:
			return nil, fmt.Errorf("GROUP BY %s: aggregation must be [FUNC, path?, arg?], got %T", alias, raw)
		}
		aggs = append(aggs, spec)
	}
	return aggs, nil
}

// matchesHaving applies the HAVING conditions to a finished group row.
// Entries use the same shape as WHERE: a plain value for equality or an
// [operator, value] pair. All entries AND together. Dotted grouping fields
// are addressable by their full path.
func matchesHaving(group map[string]any, having map[string]any) (bool, error) {
	for alias, cond := range having {
		val, ok := group[alias]
		if !ok {
			val, _ = fieldpath.Get(group, alias)
		}
		op, expected := splitCondition(cond)
		match, err := condition.Compare(op, val, expected)
		if err != nil {
			return false, fmt.Errorf("HAVING %s: %w", alias, err)
		}
		if !match {
			return false, nil
		}
	}
	return true, nil
}
