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

package aggregator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownFunction marks a request for an aggregation function that is
// neither builtin nor registered. This is a configuration error: the GROUP BY
// operator propagates it and the whole mapping call aborts.
var ErrUnknownFunction = errors.New("unknown aggregation function")

// Registry holds custom aggregator constructors. Registered names take
// precedence over builtins; lookup is case-insensitive. The zero value is not
// usable, create registries with NewRegistry.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]func() AggregatorFunction
}

// NewRegistry creates an empty registry. Builtin functions are always
// available through Create, even on a fresh registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]func() AggregatorFunction)}
}

// Register adds a custom aggregator constructor. Re-registering a name is an
// error.
func (r *Registry) Register(name string, constructor func() AggregatorFunction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(name)
	if _, exists := r.constructors[key]; exists {
		return fmt.Errorf("aggregator %s already registered", key)
	}
	r.constructors[key] = constructor
	return nil
}

// Unregister removes a custom aggregator.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.constructors, strings.ToLower(name))
}

// Create instantiates the aggregation function named by aggType, consulting
// the registry first and the builtins second. The extra argument is handed to
// aggregators that accept one (concat's separator) and ignored otherwise.
func (r *Registry) Create(aggType AggregateType, arg any) (AggregatorFunction, error) {
	name := strings.ToLower(string(aggType))

	r.mu.RLock()
	constructor, exists := r.constructors[name]
	r.mu.RUnlock()

	var agg AggregatorFunction
	if exists {
		agg = constructor()
	} else {
		switch AggregateType(name) {
		case Count:
			agg = &CountAggregator{}
		case Sum:
			agg = &SumAggregator{}
		case Avg, Average:
			agg = &AvgAggregator{}
		case Min:
			agg = &MinAggregator{}
		case Max:
			agg = &MaxAggregator{}
		case First:
			agg = &FirstAggregator{}
		case Last:
			agg = &LastAggregator{}
		case Collect:
			agg = &CollectAggregator{}
		case Concat:
			agg = &ConcatAggregator{Separator: ", "}
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
		}
	}

	if setter, ok := agg.(ArgSetter); ok && arg != nil {
		setter.SetArg(arg)
	}
	return agg, nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used when no explicit one
// is supplied.
func DefaultRegistry() *Registry { return defaultRegistry }

// Register adds a custom aggregator constructor to the default registry.
func Register(name string, constructor func() AggregatorFunction) error {
	return defaultRegistry.Register(name, constructor)
}

// Unregister removes a custom aggregator from the default registry.
func Unregister(name string) {
	defaultRegistry.Unregister(name)
}

// Create instantiates an aggregation function from the default registry.
func Create(aggType AggregateType, arg any) (AggregatorFunction, error) {
	return defaultRegistry.Create(aggType, arg)
}
