// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

// pathBuilder accumulates the "_"-joined field path of the current node.
type pathBuilder struct {
	buf []byte
}

// enter appends name and returns a mark to restore with leave.
func (p *pathBuilder) enter(name string) int {
	mark := len(p.buf)
	if mark > 0 {
		p.buf = append(p.buf, '_')
	}
	p.buf = append(p.buf, name...)
	return mark
}

func (p *pathBuilder) leave(mark int) {
	p.buf = p.buf[:mark]
}

func (p *pathBuilder) empty() bool { return len(p.buf) == 0 }

func (p *pathBuilder) String() string { return string(p.buf) }
