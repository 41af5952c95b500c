// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"fmt"
	"io"
)

// writeTo writes all families in first-seen order, separated by a blank line.
// It stops at the first failed write.
func (s *familySet) writeTo(w io.Writer) error {
	var line []byte
	first := true

	for pair := s.families.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			if err := write(w, []byte{'\n'}); err != nil {
				return err
			}
		}

		first = false

		fam := pair.Value
		line = append(append(line[:0], fam.header...), '\n')
		if err := write(w, line); err != nil {
			return err
		}

		for sample := fam.samples.Oldest(); sample != nil; sample = sample.Next() {
			line = append(line[:0], sample.Key...)
			line = append(line, ' ')
			line = append(line, sample.Value...)
			line = append(line, '\n')
			if err := write(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func write(w io.Writer, p []byte) error {
	if _, err := w.Write(p); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
