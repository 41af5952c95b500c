// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type globMatcher string

// NewGlobMatcher creates a wildcard matcher. Patterns without wildcards
// degrade to exact string matchers.
func NewGlobMatcher(expr string) (Matcher, error) {
	if !doublestar.ValidatePattern(expr) {
		return nil, fmt.Errorf("invalid glob pattern %q", expr)
	}
	if !strings.ContainsAny(expr, `*?[{\`) {
		return stringFullMatcher(expr), nil
	}
	if unescaped, ok := unescapeGlob(expr); ok {
		return stringFullMatcher(unescaped), nil
	}
	return globMatcher(expr), nil
}

func (m globMatcher) MatchString(name string) bool {
	ok, _ := doublestar.Match(string(m), name)
	return ok
}

// unescapeGlob returns the literal string when every meta character in expr is escaped.
func unescapeGlob(expr string) (string, bool) {
	var sb strings.Builder
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch c {
		case '\\':
			if i+1 >= len(expr) {
				return "", false
			}
			i++
			sb.WriteByte(expr[i])
		case '*', '?', '[', '{':
			return "", false
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), true
}
