// SPDX-License-Identifier: GPL-3.0-or-later

package promconf

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	s := Schema()
	require.NotNil(t, s)
	require.NotNil(t, s.Properties)

	var names []string
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"namespace", "labels", "metrics", "filter"}, names)
	assert.Empty(t, s.Required)

	labels, ok := s.Properties.Get("labels")
	require.True(t, ok)
	assert.Equal(t, "object", labels.Type)
	assert.Equal(t, "Labels added to every sample", labels.Description)

	metrics, ok := s.Properties.Get("metrics")
	require.True(t, ok)
	require.NotNil(t, metrics.AdditionalProperties)
	typ, ok := metrics.AdditionalProperties.Properties.Get("type")
	require.True(t, ok)
	assert.Contains(t, typ.Enum, "counter")

	bs, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"includes"`)
}
