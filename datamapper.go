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

// Package datamapper maps nested source trees onto a template describing the
// desired output shape. Templates mix literal values, `{{ path }}`
// placeholder expressions and wildcard nodes that expand a collection,
// optionally filtered and reshaped by WHERE, ORDER BY, GROUP BY, DISTINCT,
// OFFSET and LIMIT operators.
//
// Usage:
//
//	mapper := datamapper.New()
//	out, err := mapper.Map(
//	    map[string]any{"order": orderData},
//	    map[string]any{
//	        "customer": "{{ order.customer.name | trim }}",
//	        "items": map[string]any{
//	            "WHERE": map[string]any{"price": []any{">", 10}},
//	            "ORDER BY": "price DESC",
//	            "*": map[string]any{
//	                "name":  "{{ order.items.*.name }}",
//	                "price": "{{ order.items.*.price }}",
//	            },
//	        },
//	    },
//	)
//
// A mapping call is synchronous and side-effect free: sources are never
// mutated and the call either returns a fully resolved output tree or an
// error. Missing data resolves to nil (or the placeholder's `??` default);
// configuration mistakes such as unknown filters or aggregation functions
// abort the whole call.
package datamapper

import (
	"fmt"
	"strings"

	"github.com/event4u-app/data-helpers/aggregator"
	"github.com/event4u-app/data-helpers/dataset"
	"github.com/event4u-app/data-helpers/fieldpath"
	"github.com/event4u-app/data-helpers/logger"
	"github.com/event4u-app/data-helpers/operator"
	"github.com/event4u-app/data-helpers/template"
)

// Mapper transforms source trees according to a template. A Mapper is safe
// for repeated use; each Map call is independent.
type Mapper struct {
	filters     *template.FilterRegistry
	callbacks   *template.CallbackRegistry
	aggregators *aggregator.Registry
	log         logger.Logger
}

// New creates a Mapper. Without options it uses the package-level filter,
// callback and aggregator registries and the default logger.
func New(options ...Option) *Mapper {
	m := &Mapper{
		filters:     template.DefaultFilters(),
		callbacks:   template.DefaultCallbacks(),
		aggregators: aggregator.DefaultRegistry(),
		log:         logger.GetDefault(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Map resolves the template against the named source trees and returns the
// output tree. The output structurally mirrors the template; wildcard nodes
// become slices with one element per surviving row.
func (m *Mapper) Map(sources map[string]any, tmpl map[string]any) (map[string]any, error) {
	out, err := m.mapNode(tmpl, nil, sources)
	if err != nil {
		return nil, err
	}
	result, ok := out.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("template root must be a map, got %T", tmpl)
	}
	return result, nil
}

// Map resolves a template with a default Mapper.
func Map(sources map[string]any, tmpl map[string]any) (map[string]any, error) {
	return New().Map(sources, tmpl)
}

// rowScope carries the per-row evaluation context inside a wildcard branch.
type rowScope struct {
	base string // wildcard source path up to the first *
	row  dataset.Row
}

func (m *Mapper) mapNode(node any, scope *rowScope, sources map[string]any) (any, error) {
	switch n := node.(type) {
	case string:
		if !template.IsExpression(n) {
			return n, nil
		}
		expr, err := template.Parse(n)
		if err != nil {
			return nil, err
		}
		return expr.Evaluate(template.Env{
			Resolve:   m.resolver(scope, sources),
			Filters:   m.filters,
			Callbacks: m.callbacks,
		})

	case map[string]any:
		if _, wildcard := n["*"]; wildcard || operator.HasOperator(n) {
			return m.mapWildcard(n, sources)
		}
		out := make(map[string]any, len(n))
		for key, child := range n {
			v, err := m.mapNode(child, scope, sources)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil

	case []any:
		out := make([]any, len(n))
		for i, child := range n {
			v, err := m.mapNode(child, scope, sources)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil

	default:
		return n, nil
	}
}

// mapWildcard expands a wildcard node: build the row set from the wildcard
// source path implied by the sub-template, run the operator pipeline, then
// map the '*' sub-template once per surviving row.
func (m *Mapper) mapWildcard(node map[string]any, sources map[string]any) (any, error) {
	subTemplate, hasSub := node["*"]
	if !hasSub {
		return nil, fmt.Errorf("wildcard operator node requires a '*' sub-template")
	}

	for key := range node {
		if key != "*" && !operator.IsOperatorKey(key) {
			return nil, fmt.Errorf("unexpected key %q in wildcard node", key)
		}
	}

	base, err := wildcardBase(subTemplate)
	if err != nil {
		return nil, err
	}
	if base == "" {
		return nil, fmt.Errorf("wildcard node needs a placeholder with a wildcard path to name its source")
	}

	rows := dataset.Rows{}
	collection, ok := template.SourceResolver(sources)(base)
	if ok {
		matches := fieldpath.ResolvePath(collection, wildcardOnly)
		rows = dataset.FromMatches(matches)
	}
	m.log.Debug("wildcard node %q expanded to %d rows", base, len(rows))

	rows, err = operator.Pipeline(rows, node, m.aggregators)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(rows))
	for _, row := range rows {
		scope := &rowScope{base: base, row: row}
		v, err := m.mapNode(subTemplate, scope, sources)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// wildcardOnly is the pre-parsed single-wildcard path used to fan a resolved
// collection out into rows.
var wildcardOnly = &fieldpath.Path{
	Raw:      "*",
	Segments: []fieldpath.Segment{{Kind: fieldpath.SegmentWildcard}},
}

// resolver builds the placeholder lookup for one evaluation context. Inside
// a wildcard row, paths of the form base.*.suffix and bare relative paths
// resolve against the row; everything else falls through to the named
// sources.
func (m *Mapper) resolver(scope *rowScope, sources map[string]any) template.Resolver {
	fromSources := template.SourceResolver(sources)
	if scope == nil {
		return fromSources
	}

	prefix := scope.base + ".*"
	return func(path string) (any, bool) {
		if path == prefix {
			return scope.row.Value, true
		}
		if strings.HasPrefix(path, prefix+".") {
			return template.ResolveAny(scope.row.Value, path[len(prefix)+1:])
		}
		if v, ok := resolveRelative(scope.row.Value, path); ok {
			return v, true
		}
		return fromSources(path)
	}
}

// resolveRelative looks a path up against the row value. Unlike the
// base-prefixed form, a wildcard path only counts as found when it matches
// something, so absolute source paths still fall through to the sources.
func resolveRelative(data any, path string) (any, bool) {
	if !strings.Contains(path, "*") {
		return fieldpath.Get(data, path)
	}
	matches, err := fieldpath.Resolve(data, path)
	if err != nil || len(matches) == 0 {
		return nil, false
	}
	values := make([]any, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	return values, true
}

// wildcardBase finds the wildcard source path shared by the sub-template's
// placeholders: the portion before the first wildcard segment of the first
// wildcard placeholder. Every wildcard placeholder in one node must agree on
// that prefix, otherwise the rows could not correlate.
func wildcardBase(node any) (string, error) {
	base := ""
	err := walkExpressions(node, func(expr *template.Expression) error {
		idx := strings.Index(expr.Path, ".*")
		if idx < 0 {
			return nil
		}
		prefix := expr.Path[:idx]
		if base == "" {
			base = prefix
		} else if base != prefix {
			return fmt.Errorf("wildcard placeholders disagree on source: %q vs %q", base, prefix)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return base, nil
}

func walkExpressions(node any, visit func(*template.Expression) error) error {
	switch n := node.(type) {
	case string:
		if !template.IsExpression(n) {
			return nil
		}
		expr, err := template.Parse(n)
		if err != nil {
			return err
		}
		return visit(expr)
	case map[string]any:
		for _, child := range n {
			if err := walkExpressions(child, visit); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for _, child := range n {
			if err := walkExpressions(child, visit); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}
