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

package template

import (
	"fmt"
	"strings"

	"github.com/event4u-app/data-helpers/fieldpath"
)

// Resolver looks a path up in whatever context the caller assembles (row
// context, named source trees). A miss returns (nil, false).
type Resolver func(path string) (any, bool)

// Env carries everything an expression evaluation needs.
type Env struct {
	Resolve   Resolver
	Filters   *FilterRegistry
	Callbacks *CallbackRegistry
}

// Evaluate resolves the expression path, applies the default fallback and
// runs the filter pipeline. A lookup miss resolves to the default (or nil);
// an unknown filter or callback is an error.
func (e *Expression) Evaluate(env Env) (any, error) {
	filters := env.Filters
	if filters == nil {
		filters = DefaultFilters()
	}
	callbacks := env.Callbacks
	if callbacks == nil {
		callbacks = DefaultCallbacks()
	}

	var value any
	if env.Resolve != nil {
		value, _ = env.Resolve(e.Path)
	}
	if value == nil && e.HasDef {
		value = e.Default
	}

	for _, call := range e.Filters {
		if call.Name == "callback" {
			cb, ok := callbacks.Get(call.Arg)
			if !ok {
				return nil, fmt.Errorf("template %q: unknown callback %q", e.Raw, call.Arg)
			}
			v, err := cb(value)
			if err != nil {
				return nil, fmt.Errorf("template %q: callback %q: %w", e.Raw, call.Arg, err)
			}
			value = v
			continue
		}

		filter, ok := filters.Get(call.Name)
		if !ok {
			return nil, fmt.Errorf("template %q: %w", e.Raw, &FilterError{Name: call.Name})
		}
		v, err := filter(value, call.Arg)
		if err != nil {
			return nil, fmt.Errorf("template %q: filter %q: %w", e.Raw, call.Name, err)
		}
		value = v
	}

	return value, nil
}

// Evaluate parses and evaluates a placeholder against named source trees.
// The first path segment selects the source: "user.name" reads path "name"
// from the "user" tree.
func Evaluate(raw string, sources map[string]any) (any, error) {
	expr, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return expr.Evaluate(Env{Resolve: SourceResolver(sources)})
}

// SourceResolver builds a Resolver over named source trees.
func SourceResolver(sources map[string]any) Resolver {
	return func(path string) (any, bool) {
		first := fieldpath.FirstSegment(path)
		source, ok := sources[first]
		if !ok {
			return nil, false
		}
		rest := path[len(first):]
		for len(rest) > 0 && rest[0] == '.' {
			rest = rest[1:]
		}
		if rest == "" {
			return source, true
		}
		return ResolveAny(source, rest)
	}
}

// ResolveAny resolves a path that may contain wildcard segments. Without
// wildcards it behaves like fieldpath.Get; with wildcards it returns the
// flattened, ordered collection of matched values (possibly empty, which
// still counts as found).
func ResolveAny(data any, path string) (any, bool) {
	if !strings.Contains(path, "*") {
		return fieldpath.Get(data, path)
	}
	matches, err := fieldpath.Resolve(data, path)
	if err != nil {
		return nil, false
	}
	values := make([]any, len(matches))
	for i, m := range matches {
		values[i] = m.Value
	}
	return values, true
}
