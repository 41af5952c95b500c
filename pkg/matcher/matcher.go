// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"errors"
	"fmt"
	"strings"
)

// Matcher reports whether a metric name matches.
type Matcher interface {
	MatchString(string) bool
}

const (
	fmtString = "string"
	fmtGlob   = "glob"
	fmtRegExp = "regexp"
)

var shortFormats = map[byte]string{
	'=': fmtString,
	'*': fmtGlob,
	'~': fmtRegExp,
}

var errInvalidFormat = errors.New("unsupported matcher format")

// Must is like Parse but panics on error.
func Must(m Matcher, err error) Matcher {
	if err != nil {
		panic(err)
	}
	return m
}

// Parse parses a pattern written in one of the supported formats.
func Parse(line string) (Matcher, error) {
	format, expr := splitFormat(line)

	switch format {
	case fmtString:
		return NewStringMatcher(expr, true, true)
	case fmtGlob:
		return NewGlobMatcher(expr)
	case fmtRegExp:
		return NewRegExpMatcher(expr)
	default:
		return nil, fmt.Errorf("%w: %q", errInvalidFormat, format)
	}
}

func splitFormat(line string) (format, expr string) {
	if line == "" {
		return fmtGlob, ""
	}
	if f, ok := shortFormats[line[0]]; ok && (len(line) == 1 || line[1] == ' ') {
		return f, strings.TrimPrefix(line[1:], " ")
	}
	if i := strings.IndexByte(line, ':'); i > 0 {
		switch f := line[:i]; f {
		case fmtString, fmtGlob, fmtRegExp:
			return f, line[i+1:]
		}
	}
	return fmtGlob, line
}
