// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		line    string
		want    Matcher
		wantErr bool
	}{
		"short string":          {line: "= my_requests", want: stringFullMatcher("my_requests")},
		"short string no space": {line: "=", want: stringFullMatcher("")},
		"long string":           {line: "string:my_requests", want: stringFullMatcher("my_requests")},
		"short glob":            {line: "* my_*", want: globMatcher("my_*")},
		"long glob":             {line: "glob:my_?", want: globMatcher("my_?")},
		"bare glob":             {line: "my_inner_*", want: globMatcher("my_inner_*")},
		"bare literal":          {line: "my_errors", want: stringFullMatcher("my_errors")},
		"escaped glob literal":  {line: `my\*`, want: stringFullMatcher("my*")},
		"short regexp prefix":   {line: "~ ^my_", want: stringPrefixMatcher("my_")},
		"long regexp suffix":    {line: "regexp:_total$", want: stringSuffixMatcher("_total")},
		"bad regexp":            {line: "~ (", wantErr: true},
		"bad glob":              {line: "* my_[", wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := Parse(test.line)
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, m)
		})
	}
}

func TestParse_compiledRegExp(t *testing.T) {
	m, err := Parse("~ ^my_.+_total$")
	require.NoError(t, err)

	re, ok := m.(*regexp.Regexp)
	require.True(t, ok)
	assert.Equal(t, "^my_.+_total$", re.String())
	assert.True(t, m.MatchString("my_one_total"))
	assert.False(t, m.MatchString("my_total"))
}

func TestGlobMatcher_MatchString(t *testing.T) {
	tests := []struct {
		expected bool
		expr     string
		name     string
	}{
		{true, "my_*", "my_requests"},
		{true, "*_total", "my_one_total"},
		{true, "my_inner_?alue", "my_inner_value"},
		{true, "my_{errors,requests}", "my_errors"},
		{false, "my_{errors,requests}", "my_inner_value"},
		{false, "my_*", "other_requests"},
	}
	for _, test := range tests {
		t.Run(test.expr+"/"+test.name, func(t *testing.T) {
			m, err := NewGlobMatcher(test.expr)
			require.NoError(t, err)
			assert.Equal(t, test.expected, m.MatchString(test.name))
		})
	}
}

func TestSimpleExpr_Parse(t *testing.T) {
	tests := map[string]struct {
		expr    SimpleExpr
		match   []string
		noMatch []string
		wantErr bool
	}{
		"empty": {
			wantErr: true,
		},
		"includes only": {
			expr:    SimpleExpr{Includes: []string{"my_*"}},
			match:   []string{"my_requests", "my_inner_value"},
			noMatch: []string{"requests"},
		},
		"excludes only": {
			expr:    SimpleExpr{Excludes: []string{"*_unknown"}},
			match:   []string{"my_requests"},
			noMatch: []string{"my_inner_unknown"},
		},
		"includes and excludes": {
			expr:    SimpleExpr{Includes: []string{"my_*"}, Excludes: []string{"~ _unknown$"}},
			match:   []string{"my_errors"},
			noMatch: []string{"my_inner_unknown", "other"},
		},
		"invalid include": {
			expr:    SimpleExpr{Includes: []string{"~ ("}},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := test.expr.Parse()
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range test.match {
				assert.Truef(t, m.MatchString(s), "expected %q to match", s)
			}
			for _, s := range test.noMatch {
				assert.Falsef(t, m.MatchString(s), "expected %q not to match", s)
			}
		})
	}
}

func TestLogical(t *testing.T) {
	assert.Equal(t, FALSE(), Not(TRUE()))
	assert.Equal(t, TRUE(), Not(FALSE()))
	assert.Equal(t, stringFullMatcher("a"), And(TRUE(), stringFullMatcher("a")))
	assert.Equal(t, FALSE(), And(stringFullMatcher("a"), FALSE()))
	assert.Equal(t, TRUE(), Or(stringFullMatcher("a"), TRUE()))
	assert.Equal(t, stringFullMatcher("a"), Or(FALSE(), stringFullMatcher("a")))
	assert.Equal(t,
		orMatcher{orMatcher{stringFullMatcher("a"), stringFullMatcher("b")}, stringFullMatcher("c")},
		Or(stringFullMatcher("a"), stringFullMatcher("b"), stringFullMatcher("c")))
}

func TestWithCache(t *testing.T) {
	assert.Equal(t, TRUE(), WithCache(TRUE()))

	m := WithCache(stringPrefixMatcher("my_"))
	assert.True(t, m.MatchString("my_errors"))
	assert.True(t, m.MatchString("my_errors"))
	assert.False(t, m.MatchString("errors"))

	cm := m.(*cachedMatcher)
	assert.Len(t, cm.cache, 2)
}
