// SPDX-License-Identifier: GPL-3.0-or-later

package docvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdata/netdata/go/promtext/pkg/promtext"
)

func TestFromJSON(t *testing.T) {
	tests := map[string]struct {
		input    string
		expected promtext.Value
		wantErr  bool
	}{
		"object keeps key order": {
			input: `{"z": 1, "a": -2, "m": 1.5}`,
			expected: promtext.Record(
				promtext.NewField("z", promtext.Uint(1)),
				promtext.NewField("a", promtext.Int(-2)),
				promtext.NewField("m", promtext.Float(1.5)),
			),
		},
		"nested": {
			input: `{"inner": {"ok": true, "off": false, "note": "x", "none": null}}`,
			expected: promtext.Record(
				promtext.NewField("inner", promtext.Record(
					promtext.NewField("ok", promtext.Bool(true)),
					promtext.NewField("off", promtext.Bool(false)),
					promtext.NewField("note", promtext.Text("x")),
					promtext.NewField("none", promtext.None()),
				)),
			),
		},
		"array": {
			input:    `[1, {"a": 2}]`,
			expected: promtext.Sequence(promtext.Uint(1), promtext.Record(promtext.NewField("a", promtext.Uint(2)))),
		},
		"exponent is float": {
			input:    `1e3`,
			expected: promtext.Float(1000),
		},
		"uint64 overflow is float": {
			input:    `18446744073709551616`,
			expected: promtext.Float(18446744073709551616),
		},
		"max uint64": {
			input:    `18446744073709551615`,
			expected: promtext.Uint(18446744073709551615),
		},
		"empty object": {
			input:    `{}`,
			expected: promtext.Record(),
		},
		"invalid": {
			input:   `{"a": `,
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := FromJSON([]byte(test.input))
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, v)
		})
	}
}

func TestJSONParser_encode(t *testing.T) {
	var p JSONParser

	for i := 0; i < 2; i++ {
		v, err := p.Parse([]byte(`{"requests": 1024, "status": "OK", "inner": {"value": 3.42}}`))
		require.NoError(t, err)

		out, err := promtext.EncodeToText(v, "my", nil, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "# TYPE my_requests untyped\nmy_requests 1024\n\n# TYPE my_inner_value untyped\nmy_inner_value 3.42\n", out)
	}
}
