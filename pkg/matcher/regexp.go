// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "regexp"

// NewRegExpMatcher creates a regexp matcher. Expressions that only anchor a
// literal string are turned into cheaper string matchers.
func NewRegExpMatcher(expr string) (Matcher, error) {
	switch expr {
	case "", "^", "$":
		return TRUE(), nil
	case "^$", "$^":
		return NewStringMatcher("", true, true)
	}
	chars := []rune(expr)
	var startWith, endWith bool
	startIdx, endIdx := 0, len(chars)-1
	if chars[startIdx] == '^' {
		startWith = true
		startIdx = 1
	}
	if chars[endIdx] == '$' {
		endWith = true
		endIdx--
	}

	unescapedExpr := make([]rune, 0, endIdx-startIdx+1)
	for i := startIdx; i <= endIdx; i++ {
		ch := chars[i]
		if ch == '\\' {
			if i == endIdx { // end with '\' => invalid format
				return compileRegExp(expr)
			}
			nextCh := chars[i+1]
			if !isRegExpMeta(nextCh) { // '\' + non-meta char => special meaning
				return compileRegExp(expr)
			}
			unescapedExpr = append(unescapedExpr, nextCh)
			i++
		} else if isRegExpMeta(ch) {
			return compileRegExp(expr)
		} else {
			unescapedExpr = append(unescapedExpr, ch)
		}
	}

	return NewStringMatcher(string(unescapedExpr), startWith, endWith)
}

func compileRegExp(expr string) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return re, nil
}

// isRegExpMeta reports whether b needs to be escaped by QuoteMeta.
func isRegExpMeta(b rune) bool {
	switch b {
	case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$':
		return true
	default:
		return false
	}
}
