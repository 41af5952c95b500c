// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package matcher implements metric name matchers.

Supported formats

	string   "= my_requests"   exact match
	glob     "* my_inner_*"    wildcard match, see github.com/bmatcuk/doublestar
	regexp   "~ ^my_.+_total$" regexp match, see https://golang.org/pkg/regexp/syntax/

The long forms "string:", "glob:" and "regexp:" are accepted as well.
A pattern without a format prefix is a glob.

SimpleExpr combines several patterns:

	(includes[0] || includes[1] || ...) && !(excludes[0] || excludes[1] || ...)
*/
package matcher
