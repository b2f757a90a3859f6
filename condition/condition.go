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

// Package condition evaluates row predicates for the wildcard operator suite:
// comparison operators, SQL-style LIKE patterns and compiled free-form
// expressions.
package condition

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition is a boolean predicate over a row environment.
type Condition interface {
	Evaluate(env any) bool
}

// ExprCondition wraps a compiled expression program.
type ExprCondition struct {
	program *vm.Program
}

// NewExprCondition compiles a free-form boolean expression, e.g.
// "price > 10 && active". Undefined variables evaluate as nil so a row
// missing a field fails the predicate instead of erroring.
func NewExprCondition(expression string) (*ExprCondition, error) {
	options := []expr.Option{
		expr.Function("like_match", func(params ...any) (any, error) {
			if len(params) != 2 {
				return false, fmt.Errorf("like_match requires 2 parameters")
			}
			pattern, ok := params[1].(string)
			if !ok {
				return false, fmt.Errorf("like_match pattern must be a string")
			}
			like, err := NewLike(pattern, false)
			if err != nil {
				return false, err
			}
			return like.Match(params[0]), nil
		}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}
	return &ExprCondition{program: program}, nil
}

// Evaluate runs the compiled program. Runtime errors count as a failed match.
func (ec *ExprCondition) Evaluate(env any) bool {
	result, err := expr.Run(ec.program, env)
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}
