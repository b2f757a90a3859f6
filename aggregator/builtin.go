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

// Package aggregator implements the aggregation functions available to the
// GROUP BY operator: count, sum, avg, min, max, first, last, collect and
// concat, plus a registry for custom aggregators.
//
// Numeric aggregators (sum, avg, min, max) skip values that do not cast to a
// number; a skipped value affects neither the numerator nor the denominator.
// This is a row-level type mismatch, not an error.
package aggregator

import (
	"strings"

	"github.com/spf13/cast"
)

// toNumber coerces a value for the numeric aggregators. Nil is not a number
// here: cast would coerce it to 0, which must not feed min/max/avg.
func toNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	return f, err == nil
}

// AggregateType names an aggregation function. Lookup is case-insensitive.
type AggregateType string

const (
	Count   AggregateType = "count"
	Sum     AggregateType = "sum"
	Avg     AggregateType = "avg"
	Average AggregateType = "average" // alias of avg
	Min     AggregateType = "min"
	Max     AggregateType = "max"
	First   AggregateType = "first"
	Last    AggregateType = "last"
	Collect AggregateType = "collect"
	Concat  AggregateType = "concat"
)

// AggregatorFunction accumulates values for one group and produces a result.
// New returns a fresh instance for the next group.
type AggregatorFunction interface {
	New() AggregatorFunction
	Add(value any)
	Result() any
}

// ArgSetter is implemented by aggregators taking an extra configuration
// argument, such as concat's separator.
type ArgSetter interface {
	SetArg(arg any)
}

// CountAggregator counts rows. The added value is ignored.
type CountAggregator struct {
	count int
}

func (c *CountAggregator) New() AggregatorFunction { return &CountAggregator{} }

func (c *CountAggregator) Add(_ any) { c.count++ }

func (c *CountAggregator) Result() any { return c.count }

// SumAggregator sums numeric values, skipping anything that does not cast.
type SumAggregator struct {
	value float64
}

func (s *SumAggregator) New() AggregatorFunction { return &SumAggregator{} }

func (s *SumAggregator) Add(v any) {
	if f, ok := toNumber(v); ok {
		s.value += f
	}
}

func (s *SumAggregator) Result() any { return s.value }

// AvgAggregator averages numeric values. Non-numeric values are excluded from
// both sum and count; a group with no numeric values averages to 0.
type AvgAggregator struct {
	sum   float64
	count int
}

func (a *AvgAggregator) New() AggregatorFunction { return &AvgAggregator{} }

func (a *AvgAggregator) Add(v any) {
	if f, ok := toNumber(v); ok {
		a.sum += f
		a.count++
	}
}

func (a *AvgAggregator) Result() any {
	if a.count == 0 {
		return float64(0)
	}
	return a.sum / float64(a.count)
}

// MinAggregator tracks the numeric minimum. Result is nil when no numeric
// value was seen.
type MinAggregator struct {
	value float64
	seen  bool
}

func (m *MinAggregator) New() AggregatorFunction { return &MinAggregator{} }

func (m *MinAggregator) Add(v any) {
	f, ok := toNumber(v)
	if !ok {
		return
	}
	if !m.seen || f < m.value {
		m.value = f
		m.seen = true
	}
}

func (m *MinAggregator) Result() any {
	if !m.seen {
		return nil
	}
	return m.value
}

// MaxAggregator tracks the numeric maximum. Result is nil when no numeric
// value was seen.
type MaxAggregator struct {
	value float64
	seen  bool
}

func (m *MaxAggregator) New() AggregatorFunction { return &MaxAggregator{} }

func (m *MaxAggregator) Add(v any) {
	f, ok := toNumber(v)
	if !ok {
		return
	}
	if !m.seen || f > m.value {
		m.value = f
		m.seen = true
	}
}

func (m *MaxAggregator) Result() any {
	if !m.seen {
		return nil
	}
	return m.value
}

// FirstAggregator keeps the value of the first row in group order.
type FirstAggregator struct {
	value any
	seen  bool
}

func (f *FirstAggregator) New() AggregatorFunction { return &FirstAggregator{} }

func (f *FirstAggregator) Add(v any) {
	if !f.seen {
		f.value = v
		f.seen = true
	}
}

func (f *FirstAggregator) Result() any { return f.value }

// LastAggregator keeps the value of the last row in group order.
type LastAggregator struct {
	value any
}

func (l *LastAggregator) New() AggregatorFunction { return &LastAggregator{} }

func (l *LastAggregator) Add(v any) { l.value = v }

func (l *LastAggregator) Result() any { return l.value }

// CollectAggregator gathers all values in row order, duplicates included.
type CollectAggregator struct {
	values []any
}

func (c *CollectAggregator) New() AggregatorFunction { return &CollectAggregator{} }

func (c *CollectAggregator) Add(v any) { c.values = append(c.values, v) }

func (c *CollectAggregator) Result() any {
	if c.values == nil {
		return []any{}
	}
	return c.values
}

// ConcatAggregator joins stringified values with a separator. Create defaults
// the separator to ", "; an explicitly configured empty separator joins with
// nothing in between. Nil values are skipped.
type ConcatAggregator struct {
	Separator string
	parts     []string
}

func (c *ConcatAggregator) New() AggregatorFunction {
	return &ConcatAggregator{Separator: c.Separator}
}

func (c *ConcatAggregator) SetArg(arg any) {
	if arg == nil {
		return
	}
	c.Separator = cast.ToString(arg)
}

func (c *ConcatAggregator) Add(v any) {
	if v == nil {
		return
	}
	c.parts = append(c.parts, cast.ToString(v))
}

func (c *ConcatAggregator) Result() any {
	return strings.Join(c.parts, c.Separator)
}
