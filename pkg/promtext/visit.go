// SPDX-License-Identifier: GPL-3.0-or-later

package promtext

import (
	"fmt"
	"strings"

	"github.com/netdata/netdata/go/promtext/logger"
	"github.com/netdata/netdata/go/promtext/pkg/matcher"
)

// encodeState is the per-call traversal state. It is not shared.
type encodeState struct {
	path     pathBuilder
	resolver resolver
	common   Labels
	current  Labels
	filter   matcher.Matcher
	families *familySet
	keyBuf   strings.Builder
	log      *logger.Logger
}

func (s *encodeState) visit(v Value) error {
	switch v.kind {
	case KindBool, KindInt, KindUint, KindFloat:
		text, _ := v.sampleText()
		s.writeSample(text)
	case KindSome:
		return s.visit(*v.inner)
	case KindRecord:
		for _, f := range v.fields {
			if f.Name == "" {
				return fmt.Errorf("%w: record field without a name at '%s'", ErrEncoding, s.path.String())
			}
			mark := s.path.enter(f.Name)
			err := s.visit(f.Value)
			s.path.leave(mark)
			if err != nil {
				return err
			}
		}
	case KindSequence, KindTuple:
		for _, e := range v.elems {
			if err := s.visit(e); err != nil {
				return err
			}
		}
	case KindText, KindBytes, KindChar, KindNone, KindUnit, KindMap, KindVariant:
		if s.log.DebugEnabled() {
			s.log.Debugf("skipping %s value at '%s'", v.kind, s.path.String())
		}
	default:
		return fmt.Errorf("%w: %s value at '%s'", ErrEncoding, v.kind, s.path.String())
	}
	return nil
}

func (s *encodeState) writeSample(value string) {
	if s.path.empty() {
		s.log.Debug("skipping numeric value without a field path")
		return
	}

	name, desc := s.resolver.resolve(s.path.String())

	if s.filter != nil && !s.filter.MatchString(name) {
		if s.log.DebugEnabled() {
			s.log.Debugf("metric '%s' filtered out", name)
		}
		return
	}

	key := composeSampleKey(&s.keyBuf, name, s.current, s.common, desc.Labels)

	if s.families.record(name, key, value, desc) && s.log.DebugEnabled() {
		s.log.Debugf("new family '%s' (type %s)", name, desc.Type)
	}
}
