// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import "errors"

var (
	// ErrWrite wraps a failed write to the output sink.
	ErrWrite = errors.New("promtext: failed to write to output")
	// ErrEncoding reports a malformed or non-representable input value.
	ErrEncoding = errors.New("promtext: encoding failure")
	// ErrTextValidity reports encoded output that is not valid UTF-8.
	ErrTextValidity = errors.New("promtext: output is not valid UTF-8 text")
)
