// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "strings"

type (
	// stringFullMatcher uses "==" to match.
	stringFullMatcher string

	// stringPartialMatcher uses strings.Contains to match.
	stringPartialMatcher string

	// stringPrefixMatcher uses strings.HasPrefix to match.
	stringPrefixMatcher string

	// stringSuffixMatcher uses strings.HasSuffix to match.
	stringSuffixMatcher string
)

// NewStringMatcher creates a new matcher with string format.
func NewStringMatcher(s string, startWith, endWith bool) (Matcher, error) {
	if startWith {
		if endWith {
			return stringFullMatcher(s), nil
		}
		return stringPrefixMatcher(s), nil
	}
	if endWith {
		return stringSuffixMatcher(s), nil
	}
	return stringPartialMatcher(s), nil
}

func (m stringFullMatcher) MatchString(name string) bool    { return string(m) == name }
func (m stringPartialMatcher) MatchString(name string) bool { return strings.Contains(name, string(m)) }
func (m stringPrefixMatcher) MatchString(name string) bool  { return strings.HasPrefix(name, string(m)) }
func (m stringSuffixMatcher) MatchString(name string) bool  { return strings.HasSuffix(name, string(m)) }
