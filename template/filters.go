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
	"html"
	"reflect"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/spf13/cast"
)

// Filter transforms a value inside a placeholder pipeline. The arg is the
// text after ":" in the filter call, already unquoted; filters without an
// argument receive "".
type Filter func(value any, arg string) (any, error)

// FilterError reports an unknown filter name. Unknown filters are fatal for
// the whole mapping call.
type FilterError struct {
	Name string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

// FilterRegistry holds named filters. Names are case-insensitive.
type FilterRegistry struct {
	mu      sync.RWMutex
	filters map[string]Filter
}

// NewFilterRegistry creates a registry preloaded with the builtin filters.
func NewFilterRegistry() *FilterRegistry {
	r := &FilterRegistry{filters: make(map[string]Filter)}
	registerBuiltins(r)
	return r
}

// Register adds a filter. Re-registering a name is an error.
func (r *FilterRegistry) Register(name string, f Filter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := r.filters[key]; exists {
		return fmt.Errorf("filter %s already registered", key)
	}
	r.filters[key] = f
	return nil
}

// Get looks up a filter by name.
func (r *FilterRegistry) Get(name string) (Filter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.filters[strings.ToLower(name)]
	return f, ok
}

// defaultFilters is the package-level registry used when a mapper is built
// without an explicit one.
var defaultFilters = NewFilterRegistry()

// DefaultFilters returns the package-level filter registry.
func DefaultFilters() *FilterRegistry { return defaultFilters }

// registerBuiltins installs the standard pipeline filters. Type mismatches
// inside a filter are non-fatal: values coerce to string where sensible and
// pass through unchanged otherwise.
func registerBuiltins(r *FilterRegistry) {
	must := func(name string, f Filter) {
		if err := r.Register(name, f); err != nil {
			panic(err)
		}
	}

	must("trim", stringFilter(strings.TrimSpace))
	must("upper", stringFilter(strings.ToUpper))
	must("lower", stringFilter(strings.ToLower))
	must("ucfirst", stringFilter(func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	}))
	must("decode_html", stringFilter(html.UnescapeString))

	must("empty_to_null", func(v any, _ string) (any, error) {
		if s, ok := v.(string); ok && s == "" {
			return nil, nil
		}
		return v, nil
	})

	must("default", func(v any, arg string) (any, error) {
		if v == nil {
			return arg, nil
		}
		if s, ok := v.(string); ok && s == "" {
			return arg, nil
		}
		return v, nil
	})

	must("join", func(v any, arg string) (any, error) {
		sep := arg
		if sep == "" {
			sep = ", "
		}
		rv := reflect.ValueOf(v)
		if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
			return v, nil
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = cast.ToString(rv.Index(i).Interface())
		}
		return strings.Join(parts, sep), nil
	})

	must("count", func(v any, _ string) (any, error) {
		if v == nil {
			return 0, nil
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return rv.Len(), nil
		default:
			return 1, nil
		}
	})

	must("expr", func(v any, arg string) (any, error) {
		if arg == "" {
			return nil, fmt.Errorf("expr filter requires a program argument")
		}
		program, err := expr.Compile(arg, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("expr filter: %w", err)
		}
		return expr.Run(program, map[string]any{"value": v})
	})
}

// stringFilter adapts a string transform into a Filter. Non-string values
// other than nil coerce to string first; nil passes through.
func stringFilter(f func(string) string) Filter {
	return func(v any, _ string) (any, error) {
		if v == nil {
			return nil, nil
		}
		return f(cast.ToString(v)), nil
	}
}
