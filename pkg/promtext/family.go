// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type (
	metricFamily struct {
		header  string
		samples *orderedmap.OrderedMap[string, string]
	}
	// familySet keeps families and their samples in first-seen order.
	familySet struct {
		families *orderedmap.OrderedMap[string, *metricFamily]
	}
)

func newFamilySet() *familySet {
	return &familySet{families: orderedmap.New[string, *metricFamily]()}
}

// record stores value under sampleKey in the family of name, creating the
// family on first sight. A repeated key overwrites the value in place.
func (s *familySet) record(name, sampleKey, value string, desc MetricDescriptor) (created bool) {
	fam, ok := s.families.Get(name)
	if !ok {
		fam = &metricFamily{
			header:  familyHeader(name, desc),
			samples: orderedmap.New[string, string](),
		}
		s.families.Set(name, fam)
		created = true
	}
	fam.samples.Set(sampleKey, value)
	return created
}

func (s *familySet) len() int { return s.families.Len() }

func familyHeader(name string, desc MetricDescriptor) string {
	var sb strings.Builder
	if desc.Help != "" {
		sb.WriteString("# HELP ")
		sb.WriteString(name)
		sb.WriteByte(' ')
		sb.WriteString(escapeHelp(desc.Help))
		sb.WriteByte('\n')
	}
	sb.WriteString("# TYPE ")
	sb.WriteString(name)
	sb.WriteByte(' ')
	sb.WriteString(desc.Type.String())
	return sb.String()
}
