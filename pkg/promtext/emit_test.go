// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSink = errors.New("sink closed")

// failingWriter fails the failAt-th write (1-based) and every write after it.
type failingWriter struct {
	failAt int
	writes int
	buf    bytes.Buffer
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes >= w.failAt {
		return 0, errSink
	}
	return w.buf.Write(p)
}

func TestEncodeToSink_failingSink(t *testing.T) {
	common := Labels{{Key: "app", Value: "myapp"}}

	// header, sample, then a separator before every following family
	total := 5*2 + 4

	for failAt := 1; failAt <= total; failAt++ {
		w := &failingWriter{failAt: failAt}

		err := EncodeToSink(w, nestedValue(), "my", nestedMetadata(), common, nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrWrite)
		assert.ErrorIs(t, err, errSink)
		assert.Equal(t, failAt, w.writes, "no writes after the failing one")
		assert.True(t, bytes.HasPrefix([]byte(nestedExpected), w.buf.Bytes()))
	}

	w := &failingWriter{failAt: total + 1}
	require.NoError(t, EncodeToSink(w, nestedValue(), "my", nestedMetadata(), common, nil))
	assert.Equal(t, total, w.writes)
	assert.Equal(t, nestedExpected, w.buf.String())
}

func TestEncodeToSink_nothingToWrite(t *testing.T) {
	w := &failingWriter{failAt: 1}

	require.NoError(t, EncodeToSink(w, Record(NewField("s", Text("x"))), "", nil, nil, nil))
	assert.Zero(t, w.writes)
}

func TestEncodeToSink_encodingErrorWritesNothing(t *testing.T) {
	var buf bytes.Buffer

	err := EncodeToSink(&buf, Record(NewField("a", Int(1)), NewField("b", Value{})), "", nil, nil, nil)
	assert.ErrorIs(t, err, ErrEncoding)
	assert.Zero(t, buf.Len())
}
