// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import "strings"

// Label is a single key/value pair attached to a sample.
type Label struct {
	Key   string
	Value string
}

// Labels is an ordered label set. Keys are not de-duplicated.
type Labels []Label

// EscapeLabelValue escapes backslash, double quote and newline.
func EscapeLabelValue(s string) string {
	if !strings.ContainsAny(s, "\\\"\n") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	writeEscaped(&sb, s, true)
	return sb.String()
}

func escapeHelp(s string) string {
	if !strings.ContainsAny(s, "\\\n") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	writeEscaped(&sb, s, false)
	return sb.String()
}

func writeEscaped(sb *strings.Builder, s string, quote bool) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			sb.WriteString(`\\`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '"' && quote:
			sb.WriteString(`\"`)
		default:
			sb.WriteByte(c)
		}
	}
}

// composeSampleKey renders name{k="v",...} with the label levels in order.
// Braces are omitted when there are no labels.
func composeSampleKey(sb *strings.Builder, name string, levels ...Labels) string {
	sb.Reset()
	sb.WriteString(name)

	n := 0
	for _, lvl := range levels {
		for _, l := range lvl {
			if n == 0 {
				sb.WriteByte('{')
			} else {
				sb.WriteByte(',')
			}
			sb.WriteString(l.Key)
			sb.WriteString(`="`)
			writeEscaped(sb, l.Value, true)
			sb.WriteByte('"')
			n++
		}
	}
	if n > 0 {
		sb.WriteByte('}')
	}
	return sb.String()
}
