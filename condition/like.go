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
	"regexp"
	"strings"
)

// Like matches values against a SQL-style pattern: % matches any run of
// characters, _ matches exactly one. Matching is case-insensitive unless
// built with caseSensitive. Non-string values never match.
type Like struct {
	Pattern string
	re      *regexp.Regexp
}

// NewLike translates a LIKE pattern into an anchored regular expression.
// Regex metacharacters in the literal portions are escaped so characters
// like ( ) [ ] . match themselves.
func NewLike(pattern string, caseSensitive bool) (*Like, error) {
	var b strings.Builder
	if !caseSensitive {
		b.WriteString("(?i)")
	}
	b.WriteString("^")

	literal := strings.Builder{}
	flush := func() {
		if literal.Len() > 0 {
			b.WriteString(regexp.QuoteMeta(literal.String()))
			literal.Reset()
		}
	}

	for _, r := range pattern {
		switch r {
		case '%':
			flush()
			b.WriteString(".*")
		case '_':
			flush()
			b.WriteString(".")
		default:
			literal.WriteRune(r)
		}
	}
	flush()
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}
	return &Like{Pattern: pattern, re: re}, nil
}

// Match reports whether v matches the pattern. Only strings can match.
func (l *Like) Match(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return l.re.MatchString(s)
}
