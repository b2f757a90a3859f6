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

// Package template parses and evaluates `{{ ... }}` placeholder expressions:
// a dot-notation path, an optional `?? default` fallback and a pipeline of
// named filters applied left to right.
//
// Grammar (informal):
//
//	{{ PATH (?? DEFAULT)? (| FILTER(:ARG)?)* }}
//
// DEFAULT is a literal: a quoted string, a number, true, false or null.
// Filters transform the value of everything to their left; unknown filter
// names are a configuration error.
package template

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a parsed placeholder.
type Expression struct {
	Raw     string
	Path    string
	Default any
	HasDef  bool
	Filters []FilterCall
}

// FilterCall is one step of the filter pipeline.
type FilterCall struct {
	Name string
	Arg  string
}

// IsExpression reports whether a template string is a placeholder expression.
func IsExpression(s string) bool {
	t := strings.TrimSpace(s)
	return strings.HasPrefix(t, "{{") && strings.HasSuffix(t, "}}")
}

// Parse parses a `{{ ... }}` placeholder.
func Parse(raw string) (*Expression, error) {
	t := strings.TrimSpace(raw)
	if !strings.HasPrefix(t, "{{") || !strings.HasSuffix(t, "}}") {
		return nil, fmt.Errorf("not a template expression: %q", raw)
	}
	inner := strings.TrimSpace(t[2 : len(t)-2])
	if inner == "" {
		return nil, fmt.Errorf("empty template expression: %q", raw)
	}

	parts := splitOutsideQuotes(inner, '|')
	expr := &Expression{Raw: raw}

	head := strings.TrimSpace(parts[0])
	if idx := indexOutsideQuotes(head, "??"); idx >= 0 {
		expr.Path = strings.TrimSpace(head[:idx])
		def, err := parseLiteral(strings.TrimSpace(head[idx+2:]))
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", raw, err)
		}
		expr.Default = def
		expr.HasDef = true
	} else {
		expr.Path = head
	}
	if expr.Path == "" {
		return nil, fmt.Errorf("template %q: missing path", raw)
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("template %q: empty filter", raw)
		}
		call := FilterCall{Name: part}
		if idx := indexOutsideQuotes(part, ":"); idx >= 0 {
			call.Name = strings.TrimSpace(part[:idx])
			call.Arg = unquote(strings.TrimSpace(part[idx+1:]))
		}
		call.Name = strings.ToLower(call.Name)
		expr.Filters = append(expr.Filters, call)
	}

	return expr, nil
}

// parseLiteral parses a default value literal.
func parseLiteral(s string) (any, error) {
	if s == "" {
		return nil, fmt.Errorf("missing default value")
	}
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1], nil
		}
	}
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "nil":
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse default literal %q", s)
}

// splitOutsideQuotes splits on sep, ignoring separators inside single or
// double quoted runs.
func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	start := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// indexOutsideQuotes finds the first occurrence of sub outside quoted runs.
func indexOutsideQuotes(s, sub string) int {
	var quote byte
	for i := 0; i+len(sub) <= len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		default:
			if s[i:i+len(sub)] == sub {
				return i
			}
		}
	}
	return -1
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
