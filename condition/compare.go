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

package condition

import (
	"fmt"
	"reflect"

	"github.com/spf13/cast"
)

// Compare applies a comparison operator to two values. When both sides cast
// to float64 the comparison is numeric, otherwise both sides are compared as
// strings. "==" is a loose equality after coercion; "===" additionally
// requires matching dynamic types. Unknown operators are a configuration
// error.
func Compare(op string, left, right any) (bool, error) {
	switch op {
	case "==", "=":
		return looseEqual(left, right), nil
	case "!=", "<>":
		return !looseEqual(left, right), nil
	case "===":
		return strictEqual(left, right), nil
	case "!==":
		return !strictEqual(left, right), nil
	case ">", ">=", "<", "<=":
		return ordered(op, left, right), nil
	default:
		return false, fmt.Errorf("unknown comparison operator %q", op)
	}
}

func looseEqual(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	lf, lerr := cast.ToFloat64E(left)
	rf, rerr := cast.ToFloat64E(right)
	if lerr == nil && rerr == nil {
		return lf == rf
	}
	return cast.ToString(left) == cast.ToString(right)
}

func strictEqual(left, right any) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if reflect.TypeOf(left) != reflect.TypeOf(right) {
		return false
	}
	return reflect.DeepEqual(left, right)
}

func ordered(op string, left, right any) bool {
	lf, lerr := cast.ToFloat64E(left)
	rf, rerr := cast.ToFloat64E(right)
	if lerr == nil && rerr == nil {
		switch op {
		case ">":
			return lf > rf
		case ">=":
			return lf >= rf
		case "<":
			return lf < rf
		case "<=":
			return lf <= rf
		}
		return false
	}

	ls, rs := cast.ToString(left), cast.ToString(right)
	switch op {
	case ">":
		return ls > rs
	case ">=":
		return ls >= rs
	case "<":
		return ls < rs
	case "<=":
		return ls <= rs
	}
	return false
}
