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

package datamapper

import (
	"os"

	"github.com/event4u-app/data-helpers/aggregator"
	"github.com/event4u-app/data-helpers/logger"
	"github.com/event4u-app/data-helpers/template"
)

// Option configures a Mapper.
type Option func(*Mapper)

// WithLogger sets the logger used for pipeline debug output.
func WithLogger(log logger.Logger) Option {
	return func(m *Mapper) {
		m.log = log
	}
}

// WithLogLevel gives the mapper its own stdout logger at the given level.
// The shared default logger is left untouched.
func WithLogLevel(level logger.Level) Option {
	return func(m *Mapper) {
		m.log = logger.NewLogger(level, os.Stdout)
	}
}

// WithFilterRegistry replaces the filter registry consulted for placeholder
// pipelines. Use this to isolate custom filters from the package-level
// registry.
func WithFilterRegistry(r *template.FilterRegistry) Option {
	return func(m *Mapper) {
		m.filters = r
	}
}

// WithCallbackRegistry replaces the callback registry used by the
// `callback:name` filter.
func WithCallbackRegistry(r *template.CallbackRegistry) Option {
	return func(m *Mapper) {
		m.callbacks = r
	}
}

// WithAggregatorRegistry replaces the aggregator registry consulted by
// GROUP BY aggregations. Builtin functions stay available; use this to scope
// custom aggregators to one mapper instead of the process-wide registry.
func WithAggregatorRegistry(r *aggregator.Registry) Option {
	return func(m *Mapper) {
		m.aggregators = r
	}
}
