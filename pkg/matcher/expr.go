// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"errors"
	"fmt"
)

// SimpleExpr selects metric names:
//
//	(includes[0] || includes[1] || ...) && !(excludes[0] || excludes[1] || ...)
type SimpleExpr struct {
	Includes []string `yaml:"includes,omitempty" json:"includes"`
	Excludes []string `yaml:"excludes,omitempty" json:"excludes"`
}

var ErrEmptyExpr = errors.New("empty expression")

// Empty returns true if both Includes and Excludes are empty.
func (s *SimpleExpr) Empty() bool {
	return len(s.Includes) == 0 && len(s.Excludes) == 0
}

// Parse parses the patterns in Includes and Excludes.
func (s *SimpleExpr) Parse() (Matcher, error) {
	if s.Empty() {
		return nil, ErrEmptyExpr
	}
	var (
		includes = FALSE()
		excludes = FALSE()
	)
	if len(s.Includes) > 0 {
		for _, item := range s.Includes {
			m, err := Parse(item)
			if err != nil {
				return nil, fmt.Errorf("parse matcher %q error: %v", item, err)
			}
			includes = Or(includes, m)
		}
	} else {
		includes = TRUE()
	}

	for _, item := range s.Excludes {
		m, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("parse matcher %q error: %v", item, err)
		}
		excludes = Or(excludes, m)
	}

	return And(includes, Not(excludes)), nil
}
