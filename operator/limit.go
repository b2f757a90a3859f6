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
	"github.com/event4u-app/data-helpers/dataset"
	"github.com/spf13/cast"
)

// Offset drops the first n rows. n <= 0 is a no-op; an offset past the end
// yields an empty set. A config that is not an integer leaves the rows
// unchanged.
func Offset(rows dataset.Rows, config any) dataset.Rows {
	n, ok := toCount(config)
	if !ok || n <= 0 {
		return rows
	}
	if n >= len(rows) {
		return dataset.Rows{}
	}
	return rows[n:]
}

// Limit keeps at most n rows. n < 0 is a no-op, n == 0 yields an empty set.
// A config that is not an integer leaves the rows unchanged.
func Limit(rows dataset.Rows, config any) dataset.Rows {
	n, ok := toCount(config)
	if !ok || n < 0 {
		return rows
	}
	if n == 0 {
		return dataset.Rows{}
	}
	if n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// toCount coerces a pagination config to an integer. Bools and other
// non-numeric types do not count as integers; the operator treats them as
// absent.
func toCount(config any) (int, bool) {
	switch config.(type) {
	case bool, nil, map[string]any, []any:
		return 0, false
	}
	n, err := cast.ToIntE(config)
	if err != nil {
		return 0, false
	}
	return n, true
}
